package services

import (
	"context"
	"testing"
	"time"

	"github.com/sanjeebSubedi/Demake-Backend/internal/apperrors"
	"github.com/sanjeebSubedi/Demake-Backend/internal/auth"
	"github.com/sanjeebSubedi/Demake-Backend/internal/config"
	"github.com/sanjeebSubedi/Demake-Backend/internal/repository"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB) (*UserService, *memoryPublisher) {
	t.Helper()

	publisher := &memoryPublisher{}
	svc := NewUserService(
		repository.NewUserRepository(db),
		publisher,
		nil,
		&config.JWTConfig{Secret: "test-jwt-secret", ExpireTime: time.Hour},
		&config.VerificationConfig{Secret: "test-verify-secret", TokenTTL: time.Hour},
		logger.NewNop(),
	)
	return svc, publisher
}

func TestSignup(t *testing.T) {
	db := openTestDB(t)
	svc, publisher := newUserService(t, db)
	ctx := context.Background()

	user, err := svc.Signup(ctx, &SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		FullName: "Alice Smith",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsVerified())
	assert.NotEqual(t, "password123", user.Password)

	// Signing up queues a verification email for the worker.
	assert.Equal(t, []queue.EventType{queue.EventVerificationEmailRequested}, publisher.eventTypes())
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newUserService(t, db)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &SignupRequest{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, &SignupRequest{Username: "alice2", Email: "alice@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestSignupDuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newUserService(t, db)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &SignupRequest{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, &SignupRequest{Username: "alice", Email: "other@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}

func TestLoginUnverifiedUser(t *testing.T) {
	db := openTestDB(t)
	svc, publisher := newUserService(t, db)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &SignupRequest{Username: "bob", Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, &LoginRequest{Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Empty(t, result.AccessToken)
	assert.Equal(t, "You have to verify your email before logging in. Check your email for verification link.", result.Message)

	// Signup sent one mail, the login attempt a second.
	assert.Len(t, publisher.eventTypes(), 2)
}

func TestLoginFlow(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newUserService(t, db)
	ctx := context.Background()

	seedUser(t, db, "carol")

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Email: "carol@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("success", func(t *testing.T) {
		result, err := svc.Login(ctx, &LoginRequest{Email: "carol@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "bearer", result.TokenType)
		assert.Empty(t, result.Message)

		claims, err := auth.ParseAccessToken(result.AccessToken, "test-jwt-secret")
		require.NoError(t, err)
		assert.Equal(t, "carol@example.com", claims.Email)
	})
}

func TestVerifyEmail(t *testing.T) {
	db := openTestDB(t)
	svc, publisher := newUserService(t, db)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &SignupRequest{Username: "dave", Email: "dave@example.com", Password: "password123"})
	require.NoError(t, err)

	token, err := auth.GenerateVerificationToken("dave@example.com", "test-verify-secret", time.Hour)
	require.NoError(t, err)

	user, err := svc.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.True(t, user.IsVerified())

	types := publisher.eventTypes()
	assert.Contains(t, types, queue.EventAccountVerified)

	// Verifying twice with fresh tokens stays idempotent.
	token2, err := auth.GenerateVerificationToken("dave@example.com", "test-verify-secret", time.Hour)
	require.NoError(t, err)
	again, err := svc.VerifyEmail(ctx, token2)
	require.NoError(t, err)
	assert.Equal(t, user.VerifiedOn.Unix(), again.VerifiedOn.Unix())
}

func TestVerifyEmailBadTokens(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newUserService(t, db)
	ctx := context.Background()

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.VerifyEmail(ctx, "not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidVerifyToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := auth.GenerateVerificationToken("x@example.com", "some-other-secret", time.Hour)
		require.NoError(t, err)
		_, err = svc.VerifyEmail(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidVerifyToken)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := auth.GenerateVerificationToken("x@example.com", "test-verify-secret", -time.Minute)
		require.NoError(t, err)
		_, err = svc.VerifyEmail(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrVerifyLinkExpired)
	})

	t.Run("unknown account", func(t *testing.T) {
		token, err := auth.GenerateVerificationToken("ghost@example.com", "test-verify-secret", time.Hour)
		require.NoError(t, err)
		_, err = svc.VerifyEmail(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newUserService(t, db)
	ctx := context.Background()

	user := seedUser(t, db, "erin")
	seedUser(t, db, "frank")

	newBio := "new bio"
	updated, err := svc.UpdateProfile(ctx, user.ID, &UpdateUserRequest{Bio: &newBio})
	require.NoError(t, err)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "erin", updated.Username, "unset fields stay untouched")

	taken := "frank"
	_, err = svc.UpdateProfile(ctx, user.ID, &UpdateUserRequest{Username: &taken})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)

	fresh := "erin_2"
	updated, err = svc.UpdateProfile(ctx, user.ID, &UpdateUserRequest{Username: &fresh})
	require.NoError(t, err)
	assert.Equal(t, "erin_2", updated.Username)
}
