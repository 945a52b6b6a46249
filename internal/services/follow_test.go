package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/apperrors"
	"github.com/sanjeebSubedi/Demake-Backend/internal/repository"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFollowService(t *testing.T, db *gorm.DB) *FollowService {
	t.Helper()
	return NewFollowService(
		repository.NewUserRepository(db),
		repository.NewFollowRepository(db),
		logger.NewNop(),
	)
}

func TestFollow(t *testing.T) {
	db := openTestDB(t)
	svc := newFollowService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	username, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", username)

	t.Run("duplicate", func(t *testing.T) {
		_, err := svc.Follow(ctx, alice.ID, bob.ID)
		assert.ErrorIs(t, err, apperrors.ErrFollowExists)
	})

	t.Run("self follow", func(t *testing.T) {
		_, err := svc.Follow(ctx, alice.ID, alice.ID)
		assert.ErrorIs(t, err, apperrors.ErrSelfFollow)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := svc.Follow(ctx, alice.ID, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUnfollow(t *testing.T) {
	db := openTestDB(t)
	svc := newFollowService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.Unfollow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFollowing)

	_, err = svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	username, err := svc.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", username)

	_, err = svc.Unfollow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFollowing)
}

func TestFollowersViewerFlag(t *testing.T) {
	db := openTestDB(t)
	svc := newFollowService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	// bob and carol follow alice; bob also follows carol.
	_, err := svc.Follow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, carol.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, bob.ID, carol.ID)
	require.NoError(t, err)

	// bob views alice's followers. The flag reflects bob's own edges, so
	// carol is marked followed and bob himself is not.
	followers, err := svc.Followers(ctx, alice.ID, bob.ID, 0, 20)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	flags := map[string]bool{}
	for _, f := range followers {
		flags[f.Username] = f.IsFollowed
	}
	assert.True(t, flags["carol"])
	assert.False(t, flags["bob"])
}

func TestFollowing(t *testing.T) {
	db := openTestDB(t)
	svc := newFollowService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	following, err := svc.Following(ctx, alice.ID, alice.ID, 0, 20)
	require.NoError(t, err)
	require.Len(t, following, 2)
	for _, f := range following {
		assert.True(t, f.IsFollowed, "the viewer follows everyone on their own following list")
	}

	t.Run("unknown subject", func(t *testing.T) {
		_, err := svc.Following(ctx, uuid.New(), alice.ID, 0, 20)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("pagination past the end", func(t *testing.T) {
		following, err := svc.Following(ctx, alice.ID, alice.ID, 10, 20)
		require.NoError(t, err)
		assert.Empty(t, following)
	})
}

func TestSuggest(t *testing.T) {
	db := openTestDB(t)
	svc := newFollowService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	others := make(map[uuid.UUID]string)
	for _, name := range []string{"carol", "dave", "erin"} {
		u := seedUser(t, db, name)
		others[u.ID] = name
	}

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	suggestions, err := svc.Suggest(ctx, alice.ID, 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 3)

	for _, s := range suggestions {
		assert.NotEqual(t, alice.ID, s.ID, "never suggest the viewer")
		assert.NotEqual(t, bob.ID, s.ID, "never suggest an already followed user")
		assert.Contains(t, others, s.ID)
	}

	t.Run("limit", func(t *testing.T) {
		suggestions, err := svc.Suggest(ctx, alice.ID, 2)
		require.NoError(t, err)
		assert.Len(t, suggestions, 2)
	})
}
