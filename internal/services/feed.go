package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/repository"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
)

// Feed tabs.
const (
	TabAll       = "all"
	TabFollowing = "following"
)

type FeedService struct {
	tweetRepo   *repository.TweetRepository
	followRepo  *repository.FollowRepository
	likeRepo    *repository.LikeRepository
	retweetRepo *repository.RetweetRepository
	logger      *logger.Logger
}

func NewFeedService(
	tweetRepo *repository.TweetRepository,
	followRepo *repository.FollowRepository,
	likeRepo *repository.LikeRepository,
	retweetRepo *repository.RetweetRepository,
	logger *logger.Logger,
) *FeedService {
	return &FeedService{
		tweetRepo:   tweetRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
		retweetRepo: retweetRepo,
		logger:      logger,
	}
}

type HomeTweet struct {
	ID           uuid.UUID `json:"id"`
	Content      string    `json:"content"`
	MediaURL     *string   `json:"media_url"`
	CreatedAt    time.Time `json:"created_at"`
	User         UserInfo  `json:"user"`
	LikeCount    int64     `json:"like_count"`
	RetweetCount int64     `json:"retweet_count"`
	ReplyCount   int64     `json:"reply_count"`
}

// HomeFeed returns top-level tweets newest first. The following tab only
// ever shows authors from the viewer's followed set. Engagement counts
// are filled with one grouped query per count kind over the whole page.
func (s *FeedService) HomeFeed(ctx context.Context, viewerID uuid.UUID, tab string, skip, limit int) ([]HomeTweet, error) {
	var (
		authorIDs []uuid.UUID
		restrict  bool
		err       error
	)
	if tab == TabFollowing {
		restrict = true
		authorIDs, err = s.followRepo.GetFollowedIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
	}

	tweets, err := s.tweetRepo.GetTopLevel(ctx, authorIDs, restrict, skip, limit)
	if err != nil {
		return nil, err
	}
	if len(tweets) == 0 {
		return []HomeTweet{}, nil
	}

	ids := make([]uuid.UUID, len(tweets))
	for i, t := range tweets {
		ids[i] = t.ID
	}

	likeCounts, err := s.likeRepo.CountByTweetIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	retweetCounts, err := s.retweetRepo.CountByTweetIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	replyCounts, err := s.tweetRepo.CountRepliesByParentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	feed := make([]HomeTweet, 0, len(tweets))
	for _, t := range tweets {
		feed = append(feed, HomeTweet{
			ID:           t.ID,
			Content:      t.Content,
			MediaURL:     t.MediaURL,
			CreatedAt:    t.CreatedAt,
			User:         newUserInfo(&t.User),
			LikeCount:    likeCounts[t.ID],
			RetweetCount: retweetCounts[t.ID],
			ReplyCount:   replyCounts[t.ID],
		})
	}
	return feed, nil
}
