package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/apperrors"
	"github.com/sanjeebSubedi/Demake-Backend/internal/models"
	"github.com/sanjeebSubedi/Demake-Backend/internal/repository"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
	"gorm.io/gorm"
)

type RetweetService struct {
	tweetRepo   *repository.TweetRepository
	retweetRepo *repository.RetweetRepository
	logger      *logger.Logger
}

func NewRetweetService(tweetRepo *repository.TweetRepository, retweetRepo *repository.RetweetRepository, logger *logger.Logger) *RetweetService {
	return &RetweetService{
		tweetRepo:   tweetRepo,
		retweetRepo: retweetRepo,
		logger:      logger,
	}
}

type RetweetResult struct {
	ID           uuid.UUID `json:"id"`
	TweetID      uuid.UUID `json:"tweet_id"`
	UserID       uuid.UUID `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	RetweetCount int64     `json:"retweet_count"`
}

func (s *RetweetService) Retweet(ctx context.Context, userID, tweetID uuid.UUID) (*RetweetResult, error) {
	exists, err := s.tweetRepo.Exists(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrTweetNotFound
	}

	retweet := &models.Retweet{TweetID: tweetID, UserID: userID}
	if err := s.retweetRepo.Create(ctx, retweet); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyRetweeted
		}
		return nil, err
	}

	count, err := s.retweetRepo.CountByTweetID(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  userID,
		"tweet_id": tweetID,
	}).Info("Tweet retweeted")

	return &RetweetResult{
		ID:           retweet.ID,
		TweetID:      retweet.TweetID,
		UserID:       retweet.UserID,
		CreatedAt:    retweet.CreatedAt,
		RetweetCount: count,
	}, nil
}

func (s *RetweetService) Unretweet(ctx context.Context, userID, tweetID uuid.UUID) (int64, error) {
	existing, err := s.retweetRepo.Get(ctx, userID, tweetID)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, apperrors.ErrRetweetNotFound
	}

	if err := s.retweetRepo.Delete(ctx, userID, tweetID); err != nil {
		return 0, err
	}

	count, err := s.retweetRepo.CountByTweetID(ctx, tweetID)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  userID,
		"tweet_id": tweetID,
	}).Info("Retweet removed")

	return count, nil
}
