package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/apperrors"
	"github.com/sanjeebSubedi/Demake-Backend/internal/models"
	"github.com/sanjeebSubedi/Demake-Backend/internal/repository"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
)

type TweetService struct {
	tweetRepo   *repository.TweetRepository
	userRepo    *repository.UserRepository
	likeRepo    *repository.LikeRepository
	retweetRepo *repository.RetweetRepository
	logger      *logger.Logger
}

func NewTweetService(
	tweetRepo *repository.TweetRepository,
	userRepo *repository.UserRepository,
	likeRepo *repository.LikeRepository,
	retweetRepo *repository.RetweetRepository,
	logger *logger.Logger,
) *TweetService {
	return &TweetService{
		tweetRepo:   tweetRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		retweetRepo: retweetRepo,
		logger:      logger,
	}
}

type CreateTweetRequest struct {
	Content       string     `json:"content"`
	MediaURL      *string    `json:"media_url"`
	ParentTweetID *uuid.UUID `json:"parent_tweet_id"`
}

// UserInfo is the author summary embedded in tweet views.
type UserInfo struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	FullName        string    `json:"full_name"`
	ProfileImageURL string    `json:"profile_image_url"`
}

type TweetDetail struct {
	ID           uuid.UUID   `json:"id"`
	Content      string      `json:"content"`
	MediaURL     *string     `json:"media_url"`
	CreatedAt    time.Time   `json:"created_at"`
	User         UserInfo    `json:"user"`
	LikeCount    int64       `json:"like_count"`
	RetweetCount int64       `json:"retweet_count"`
	ReplyIDs     []uuid.UUID `json:"reply_ids"`
}

// UserTweetItem is one row of a profile feed: either an original tweet
// or a retweet, ordered by its effective timestamp.
type UserTweetItem struct {
	Type          string     `json:"type"` // "tweet" or "retweet"
	Tweet         TweetView  `json:"tweet"`
	RetweetedAt   *time.Time `json:"retweeted_at,omitempty"`
	effectiveTime time.Time
}

type TweetView struct {
	ID            uuid.UUID  `json:"id"`
	Content       string     `json:"content"`
	MediaURL      *string    `json:"media_url"`
	ParentTweetID *uuid.UUID `json:"parent_tweet_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	User          UserInfo   `json:"user"`
}

type ReplyItem struct {
	Reply       TweetView  `json:"reply"`
	ParentTweet *TweetView `json:"parent_tweet"`
}

func newUserInfo(u *models.User) UserInfo {
	return UserInfo{
		ID:              u.ID,
		Username:        u.Username,
		FullName:        u.FullName,
		ProfileImageURL: u.ProfileImageURL,
	}
}

func newTweetView(t *models.Tweet) TweetView {
	return TweetView{
		ID:            t.ID,
		Content:       t.Content,
		MediaURL:      t.MediaURL,
		ParentTweetID: t.ParentTweetID,
		CreatedAt:     t.CreatedAt,
		User:          newUserInfo(&t.User),
	}
}

func (s *TweetService) Create(ctx context.Context, userID uuid.UUID, req *CreateTweetRequest) (*models.Tweet, error) {
	if strings.TrimSpace(req.Content) == "" && (req.MediaURL == nil || *req.MediaURL == "") {
		return nil, apperrors.ErrEmptyTweet
	}
	if utf8.RuneCountInString(req.Content) > models.MaxTweetLength {
		return nil, apperrors.ErrTweetOverflow
	}

	if req.ParentTweetID != nil {
		exists, err := s.tweetRepo.Exists(ctx, *req.ParentTweetID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrInvalidParent
		}
	}

	tweet := &models.Tweet{
		UserID:        userID,
		Content:       req.Content,
		MediaURL:      req.MediaURL,
		ParentTweetID: req.ParentTweetID,
		CreatedAt:     time.Now(),
	}

	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"tweet_id": tweet.ID,
		"user_id":  userID,
	}).Info("Tweet created")

	return tweet, nil
}

// Delete removes the tweet and its dependents. Existence is checked
// before ownership, so an unknown tweet is always a 404 regardless of
// who asks.
func (s *TweetService) Delete(ctx context.Context, tweetID, requesterID uuid.UUID) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet == nil {
		return apperrors.ErrTweetNotFound
	}
	if tweet.UserID != requesterID {
		return apperrors.ErrNonOwnerDelete
	}

	if err := s.tweetRepo.DeleteWithDependents(ctx, tweetID); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"tweet_id": tweetID,
		"user_id":  requesterID,
	}).Info("Tweet deleted")

	return nil
}

func (s *TweetService) Detail(ctx context.Context, tweetID uuid.UUID, replySkip, replyLimit int) (*TweetDetail, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet == nil {
		return nil, apperrors.ErrTweetNotFound
	}

	likeCount, err := s.likeRepo.CountByTweetID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	retweetCount, err := s.retweetRepo.CountByTweetID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	replyIDs, err := s.tweetRepo.GetReplyIDs(ctx, tweetID, replySkip, replyLimit)
	if err != nil {
		return nil, err
	}
	if replyIDs == nil {
		replyIDs = []uuid.UUID{}
	}

	return &TweetDetail{
		ID:           tweet.ID,
		Content:      tweet.Content,
		MediaURL:     tweet.MediaURL,
		CreatedAt:    tweet.CreatedAt,
		User:         newUserInfo(&tweet.User),
		LikeCount:    likeCount,
		RetweetCount: retweetCount,
		ReplyIDs:     replyIDs,
	}, nil
}

// UserTweets merges the user's original tweets with their retweets into
// one page. A retweet sorts by the retweet's own timestamp, not the
// original tweet's.
func (s *TweetService) UserTweets(ctx context.Context, targetID uuid.UUID, skip, limit int) ([]UserTweetItem, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if target == nil {
		return nil, apperrors.ErrUserNotFound
	}

	// Both sources are over-fetched to the end of the requested window,
	// then merged and windowed. The page boundary can land anywhere in
	// the interleaving.
	fetch := skip + limit
	tweets, err := s.tweetRepo.GetOriginalsByUserID(ctx, targetID, 0, fetch)
	if err != nil {
		return nil, err
	}
	retweets, err := s.retweetRepo.GetByUserID(ctx, targetID, 0, fetch)
	if err != nil {
		return nil, err
	}

	items := make([]UserTweetItem, 0, len(tweets)+len(retweets))
	for _, t := range tweets {
		items = append(items, UserTweetItem{
			Type:          "tweet",
			Tweet:         newTweetView(t),
			effectiveTime: t.CreatedAt,
		})
	}
	for _, rt := range retweets {
		retweetedAt := rt.CreatedAt
		items = append(items, UserTweetItem{
			Type:          "retweet",
			Tweet:         newTweetView(&rt.Tweet),
			RetweetedAt:   &retweetedAt,
			effectiveTime: rt.CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].effectiveTime.After(items[j].effectiveTime)
	})

	if skip >= len(items) {
		return []UserTweetItem{}, nil
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end], nil
}

// UserReplies lists the user's reply tweets with their parent tweets for
// context.
func (s *TweetService) UserReplies(ctx context.Context, targetID uuid.UUID, skip, limit int) ([]ReplyItem, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if target == nil {
		return nil, apperrors.ErrUserNotFound
	}

	replies, err := s.tweetRepo.GetRepliesByUserID(ctx, targetID, skip, limit)
	if err != nil {
		return nil, err
	}

	parentIDs := make([]uuid.UUID, 0, len(replies))
	for _, reply := range replies {
		if reply.ParentTweetID != nil {
			parentIDs = append(parentIDs, *reply.ParentTweetID)
		}
	}
	parents, err := s.tweetRepo.GetByIDs(ctx, parentIDs)
	if err != nil {
		return nil, err
	}

	items := make([]ReplyItem, 0, len(replies))
	for _, reply := range replies {
		item := ReplyItem{Reply: newTweetView(reply)}
		if reply.ParentTweetID != nil {
			if parent, ok := parents[*reply.ParentTweetID]; ok {
				view := newTweetView(parent)
				item.ParentTweet = &view
			}
		}
		items = append(items, item)
	}
	return items, nil
}
