package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/models"
	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return err
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

func (r *LikeRepository) Delete(ctx context.Context, userID, tweetID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{}).Error; err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

func (r *LikeRepository) Get(ctx context.Context, userID, tweetID uuid.UUID) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		First(&like).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get like: %w", err)
	}
	return &like, nil
}

func (r *LikeRepository) CountByTweetID(ctx context.Context, tweetID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// CountByTweetIDs returns like counts for a page of tweets in one grouped
// query.
func (r *LikeRepository) CountByTweetIDs(ctx context.Context, tweetIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(tweetIDs))
	if len(tweetIDs) == 0 {
		return counts, nil
	}

	var rows []tweetCount
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("tweet_id, COUNT(*) AS count").
		Where("tweet_id IN ?", tweetIDs).
		Group("tweet_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	for _, row := range rows {
		counts[row.TweetID] = row.Count
	}
	return counts, nil
}
