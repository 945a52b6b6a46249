package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/models"
	"gorm.io/gorm"
)

type RetweetRepository struct {
	db *gorm.DB
}

func NewRetweetRepository(db *gorm.DB) *RetweetRepository {
	return &RetweetRepository{db: db}
}

func (r *RetweetRepository) Create(ctx context.Context, retweet *models.Retweet) error {
	if err := r.db.WithContext(ctx).Create(retweet).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return err
		}
		return fmt.Errorf("failed to create retweet: %w", err)
	}
	return nil
}

func (r *RetweetRepository) Delete(ctx context.Context, userID, tweetID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Retweet{}).Error; err != nil {
		return fmt.Errorf("failed to delete retweet: %w", err)
	}
	return nil
}

func (r *RetweetRepository) Get(ctx context.Context, userID, tweetID uuid.UUID) (*models.Retweet, error) {
	var retweet models.Retweet
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		First(&retweet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get retweet: %w", err)
	}
	return &retweet, nil
}

// GetByUserID loads the user's retweets with the original tweet and its
// author, newest retweet first. The profile feed merges these with the
// user's own tweets by the retweet timestamp.
func (r *RetweetRepository) GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Retweet, error) {
	var retweets []*models.Retweet
	if err := r.db.WithContext(ctx).
		Preload("Tweet").
		Preload("Tweet.User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&retweets).Error; err != nil {
		return nil, fmt.Errorf("failed to get retweets by user: %w", err)
	}
	return retweets, nil
}

func (r *RetweetRepository) CountByTweetID(ctx context.Context, tweetID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Retweet{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count retweets: %w", err)
	}
	return count, nil
}

func (r *RetweetRepository) CountByTweetIDs(ctx context.Context, tweetIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(tweetIDs))
	if len(tweetIDs) == 0 {
		return counts, nil
	}

	var rows []tweetCount
	if err := r.db.WithContext(ctx).
		Model(&models.Retweet{}).
		Select("tweet_id, COUNT(*) AS count").
		Where("tweet_id IN ?", tweetIDs).
		Group("tweet_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count retweets: %w", err)
	}
	for _, row := range rows {
		counts[row.TweetID] = row.Count
	}
	return counts, nil
}
