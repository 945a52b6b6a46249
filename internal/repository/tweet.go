package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/models"
	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}
	return nil
}

func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&tweet, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	return &tweet, nil
}

// Exists is a lighter existence probe for parent-tweet validation.
func (r *TweetRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check tweet existence: %w", err)
	}
	return count > 0, nil
}

// GetTopLevel returns non-reply tweets newest first, optionally
// restricted to the given author set. An empty author filter with
// restrict=true yields no rows (viewer follows nobody).
func (r *TweetRepository) GetTopLevel(ctx context.Context, authorIDs []uuid.UUID, restrict bool, offset, limit int) ([]*models.Tweet, error) {
	query := r.db.WithContext(ctx).
		Preload("User").
		Where("parent_tweet_id IS NULL")
	if restrict {
		if len(authorIDs) == 0 {
			return nil, nil
		}
		query = query.Where("user_id IN ?", authorIDs)
	}

	var tweets []*models.Tweet
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("failed to get top-level tweets: %w", err)
	}
	return tweets, nil
}

// GetOriginalsByUserID returns the user's own non-reply tweets newest
// first. Retweets are merged in at the service layer.
func (r *TweetRepository) GetOriginalsByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Tweet, error) {
	var tweets []*models.Tweet
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? AND parent_tweet_id IS NULL", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("failed to get tweets by user: %w", err)
	}
	return tweets, nil
}

func (r *TweetRepository) GetRepliesByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Tweet, error) {
	var tweets []*models.Tweet
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? AND parent_tweet_id IS NOT NULL", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("failed to get replies by user: %w", err)
	}
	return tweets, nil
}

// GetReplyIDs returns the IDs of direct replies of a tweet, newest first.
func (r *TweetRepository) GetReplyIDs(ctx context.Context, parentID uuid.UUID, offset, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Where("parent_tweet_id = ?", parentID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get reply IDs: %w", err)
	}
	return ids, nil
}

// GetByIDs loads tweets with their authors, keyed for lookup.
func (r *TweetRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Tweet, error) {
	result := make(map[uuid.UUID]*models.Tweet, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var tweets []*models.Tweet
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id IN ?", ids).
		Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("failed to get tweets by IDs: %w", err)
	}
	for _, t := range tweets {
		result[t.ID] = t
	}
	return result, nil
}

// DeleteWithDependents removes the tweet, its direct replies, and every
// like and retweet hanging off any of them, in one transaction. Either
// everything goes or nothing does.
func (r *TweetRepository) DeleteWithDependents(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var replyIDs []uuid.UUID
		if err := tx.Model(&models.Tweet{}).
			Where("parent_tweet_id = ?", id).
			Pluck("id", &replyIDs).Error; err != nil {
			return err
		}

		affected := append(replyIDs, id)
		if err := tx.Where("tweet_id IN ?", affected).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id IN ?", affected).Delete(&models.Retweet{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_tweet_id = ?", id).Delete(&models.Tweet{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tweet{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	return nil
}

type tweetCount struct {
	TweetID uuid.UUID
	Count   int64
}

// CountRepliesByParentIDs returns reply counts grouped by parent tweet.
func (r *TweetRepository) CountRepliesByParentIDs(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(parentIDs))
	if len(parentIDs) == 0 {
		return counts, nil
	}

	var rows []tweetCount
	if err := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Select("parent_tweet_id AS tweet_id, COUNT(*) AS count").
		Where("parent_tweet_id IN ?", parentIDs).
		Group("parent_tweet_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count replies: %w", err)
	}
	for _, row := range rows {
		counts[row.TweetID] = row.Count
	}
	return counts, nil
}
