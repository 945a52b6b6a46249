package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/apperrors"
	"github.com/sanjeebSubedi/Demake-Backend/internal/models"
	"github.com/sanjeebSubedi/Demake-Backend/internal/repository"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
	"gorm.io/gorm"
)

type LikeService struct {
	tweetRepo *repository.TweetRepository
	likeRepo  *repository.LikeRepository
	logger    *logger.Logger
}

func NewLikeService(tweetRepo *repository.TweetRepository, likeRepo *repository.LikeRepository, logger *logger.Logger) *LikeService {
	return &LikeService{
		tweetRepo: tweetRepo,
		likeRepo:  likeRepo,
		logger:    logger,
	}
}

type LikeResult struct {
	LikeID    uuid.UUID `json:"like_id"`
	TweetID   uuid.UUID `json:"tweet_id"`
	LikeCount int64     `json:"like_count"`
}

func (s *LikeService) Like(ctx context.Context, userID, tweetID uuid.UUID) (*LikeResult, error) {
	exists, err := s.tweetRepo.Exists(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrTweetNotFound
	}

	like := &models.Like{TweetID: tweetID, UserID: userID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		// The unique pair constraint catches duplicates, including races
		// between concurrent submissions.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyLiked
		}
		return nil, err
	}

	count, err := s.likeRepo.CountByTweetID(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  userID,
		"tweet_id": tweetID,
	}).Info("Tweet liked")

	return &LikeResult{LikeID: like.ID, TweetID: tweetID, LikeCount: count}, nil
}

func (s *LikeService) Unlike(ctx context.Context, userID, tweetID uuid.UUID) (int64, error) {
	existing, err := s.likeRepo.Get(ctx, userID, tweetID)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, apperrors.ErrLikeNotFound
	}

	if err := s.likeRepo.Delete(ctx, userID, tweetID); err != nil {
		return 0, err
	}

	count, err := s.likeRepo.CountByTweetID(ctx, tweetID)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  userID,
		"tweet_id": tweetID,
	}).Info("Tweet unliked")

	return count, nil
}
