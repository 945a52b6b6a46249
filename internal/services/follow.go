package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/apperrors"
	"github.com/sanjeebSubedi/Demake-Backend/internal/models"
	"github.com/sanjeebSubedi/Demake-Backend/internal/repository"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
	"gorm.io/gorm"
)

type FollowService struct {
	userRepo   *repository.UserRepository
	followRepo *repository.FollowRepository
	logger     *logger.Logger
}

func NewFollowService(userRepo *repository.UserRepository, followRepo *repository.FollowRepository, logger *logger.Logger) *FollowService {
	return &FollowService{
		userRepo:   userRepo,
		followRepo: followRepo,
		logger:     logger,
	}
}

type FollowUserDetails struct {
	FullName        string `json:"full_name"`
	Username        string `json:"username"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profile_image_url"`
	IsFollowed      bool   `json:"is_followed"`
}

type SuggestedUser struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	Username        string    `json:"username"`
	ProfileImageURL string    `json:"profile_image_url"`
}

// Follow creates a follower->target edge and returns the target's
// username for the confirmation message.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uuid.UUID) (string, error) {
	if followerID == targetID {
		return "", apperrors.ErrSelfFollow
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if target == nil {
		return "", apperrors.ErrUserNotFound
	}

	existing, err := s.followRepo.Get(ctx, followerID, targetID)
	if err != nil {
		return "", fmt.Errorf("failed to check follow status: %w", err)
	}
	if existing != nil {
		return "", apperrors.ErrFollowExists
	}

	follow := &models.Follow{FollowerID: followerID, FollowedID: targetID}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		// Concurrent duplicate submission lands on the composite PK.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperrors.ErrFollowExists
		}
		return "", err
	}

	s.logger.WithFields(map[string]interface{}{
		"follower_id": followerID,
		"followed_id": targetID,
	}).Info("User followed")

	return target.Username, nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uuid.UUID) (string, error) {
	if followerID == targetID {
		return "", apperrors.ErrSelfFollow
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if target == nil {
		return "", apperrors.ErrUserNotFound
	}

	existing, err := s.followRepo.Get(ctx, followerID, targetID)
	if err != nil {
		return "", fmt.Errorf("failed to check follow status: %w", err)
	}
	if existing == nil {
		return "", apperrors.ErrNotFollowing
	}

	if err := s.followRepo.Delete(ctx, followerID, targetID); err != nil {
		return "", err
	}

	s.logger.WithFields(map[string]interface{}{
		"follower_id": followerID,
		"followed_id": targetID,
	}).Info("User unfollowed")

	return target.Username, nil
}

// Followers lists the subject's followers. The is_followed flag on each
// row reflects the viewer's own relation to that row, not the subject's.
func (s *FollowService) Followers(ctx context.Context, subjectID, viewerID uuid.UUID, offset, limit int) ([]FollowUserDetails, error) {
	users, err := s.listEdgeUsers(ctx, subjectID, viewerID, offset, limit, s.followRepo.GetFollowers)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *FollowService) Following(ctx context.Context, subjectID, viewerID uuid.UUID, offset, limit int) ([]FollowUserDetails, error) {
	users, err := s.listEdgeUsers(ctx, subjectID, viewerID, offset, limit, s.followRepo.GetFollowing)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *FollowService) listEdgeUsers(
	ctx context.Context,
	subjectID, viewerID uuid.UUID,
	offset, limit int,
	fetch func(context.Context, uuid.UUID, int, int) ([]*models.User, error),
) ([]FollowUserDetails, error) {
	subject, err := s.userRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if subject == nil {
		return nil, apperrors.ErrUserNotFound
	}

	users, err := fetch(ctx, subjectID, offset, limit)
	if err != nil {
		return nil, err
	}

	followedIDs, err := s.followRepo.GetFollowedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	followed := make(map[uuid.UUID]bool, len(followedIDs))
	for _, id := range followedIDs {
		followed[id] = true
	}

	details := make([]FollowUserDetails, 0, len(users))
	for _, u := range users {
		details = append(details, FollowUserDetails{
			FullName:        u.FullName,
			Username:        u.Username,
			Bio:             u.Bio,
			ProfileImageURL: u.ProfileImageURL,
			IsFollowed:      followed[u.ID],
		})
	}
	return details, nil
}

// Suggest returns a uniform random sample of users the viewer does not
// follow yet. The output order is intentionally non-deterministic.
func (s *FollowService) Suggest(ctx context.Context, viewerID uuid.UUID, limit int) ([]SuggestedUser, error) {
	users, err := s.followRepo.Suggest(ctx, viewerID, limit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]SuggestedUser, 0, len(users))
	for _, u := range users {
		suggestions = append(suggestions, SuggestedUser{
			ID:              u.ID,
			FullName:        u.FullName,
			Username:        u.Username,
			ProfileImageURL: u.ProfileImageURL,
		})
	}
	return suggestions, nil
}
