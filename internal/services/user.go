package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/apperrors"
	"github.com/sanjeebSubedi/Demake-Backend/internal/auth"
	"github.com/sanjeebSubedi/Demake-Backend/internal/config"
	"github.com/sanjeebSubedi/Demake-Backend/internal/models"
	"github.com/sanjeebSubedi/Demake-Backend/internal/repository"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/cache"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/queue"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo  *repository.UserRepository
	producer  queue.Publisher
	tokens    *cache.RedisClient
	jwtCfg    *config.JWTConfig
	verifyCfg *config.VerificationConfig
	logger    *logger.Logger
}

func NewUserService(
	userRepo *repository.UserRepository,
	producer queue.Publisher,
	tokens *cache.RedisClient,
	jwtCfg *config.JWTConfig,
	verifyCfg *config.VerificationConfig,
	logger *logger.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		producer:  producer,
		tokens:    tokens,
		jwtCfg:    jwtCfg,
		verifyCfg: verifyCfg,
		logger:    logger,
	}
}

type SignupRequest struct {
	Username  string     `json:"username" binding:"required,min=3,max=50"`
	Email     string     `json:"email" binding:"required,email"`
	Password  string     `json:"password" binding:"required,min=8"`
	FullName  string     `json:"full_name" binding:"max=100"`
	Bio       string     `json:"bio" binding:"max=255"`
	Location  string     `json:"location" binding:"max=100"`
	BirthDate *time.Time `json:"birth_date" time_format:"2006-01-02"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	Message     string `json:"message,omitempty"`
}

type UpdateUserRequest struct {
	Username  *string    `json:"username" binding:"omitempty,min=3,max=50"`
	Bio       *string    `json:"bio" binding:"omitempty,max=255"`
	Location  *string    `json:"location" binding:"omitempty,max=100"`
	BirthDate *time.Time `json:"birth_date" time_format:"2006-01-02"`
}

func (s *UserService) Signup(ctx context.Context, req *SignupRequest) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrEmailTaken
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		FullName:  req.FullName,
		Bio:       req.Bio,
		Location:  req.Location,
		BirthDate: req.BirthDate,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The email was pre-checked, so the collision is the username.
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, err
	}

	s.requestVerificationEmail(ctx, user)

	s.logger.WithField("user_id", user.ID).Info("User signed up")
	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsVerified() {
		s.requestVerificationEmail(ctx, user)
		return &LoginResult{
			Message: "You have to verify your email before logging in. Check your email for verification link.",
		}, nil
	}

	if !auth.VerifyPassword(req.Password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateAccessToken(user.ID, user.Email, s.jwtCfg.Secret, s.jwtCfg.ExpireTime)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("User logged in")
	return &LoginResult{AccessToken: token, TokenType: "bearer"}, nil
}

// VerifyEmail validates a verification token, consumes it, and marks the
// account verified. Tokens are single-use: a replay reports the link as
// expired.
func (s *UserService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseVerificationToken(token, s.verifyCfg.Secret)
	if err != nil {
		return nil, err
	}

	if err := s.consumeToken(ctx, claims.ID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if user.IsVerified() {
		return user, nil
	}

	now := time.Now()
	user.VerifiedOn = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	event := queue.Event{
		Type:      queue.EventAccountVerified,
		Timestamp: now,
		Data: queue.AccountVerifiedData{
			UserID:   user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
		},
	}
	if err := s.producer.Publish(ctx, user.ID.String(), event); err != nil {
		s.logger.WithError(err).Error("Failed to publish account verified event")
	}

	s.logger.WithField("user_id", user.ID).Info("Account verified")
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if req.Username != nil && *req.Username != user.Username {
		taken, err := s.userRepo.GetByUsername(ctx, *req.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken != nil {
			return nil, apperrors.ErrUsernameTaken
		}
		user.Username = *req.Username
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.BirthDate != nil {
		user.BirthDate = req.BirthDate
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("Profile updated")
	return user, nil
}

// requestVerificationEmail issues a fresh token and hands the mail off to
// the notification worker. Failures are logged, never surfaced: email is
// fire-and-forget relative to the request.
func (s *UserService) requestVerificationEmail(ctx context.Context, user *models.User) {
	token, err := auth.GenerateVerificationToken(user.Email, s.verifyCfg.Secret, s.verifyCfg.TokenTTL)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate verification token")
		return
	}

	event := queue.Event{
		Type:      queue.EventVerificationEmailRequested,
		Timestamp: time.Now(),
		Data: queue.VerificationEmailData{
			UserID:   user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
			Token:    token,
		},
	}
	if err := s.producer.Publish(ctx, user.ID.String(), event); err != nil {
		s.logger.WithError(err).Error("Failed to publish verification email event")
	}
}

// consumeToken marks a token ID as used. If the ledger is unreachable the
// token is accepted anyway; expiry alone still bounds its lifetime.
func (s *UserService) consumeToken(ctx context.Context, tokenID string) error {
	if s.tokens == nil {
		return nil
	}
	key := "verify:consumed:" + tokenID
	set, err := s.tokens.SetNX(ctx, key, 1, s.verifyCfg.TokenTTL)
	if err != nil {
		s.logger.WithError(err).Warn("Token ledger unavailable, accepting token")
		return nil
	}
	if !set {
		return apperrors.ErrVerifyLinkExpired
	}
	return nil
}
