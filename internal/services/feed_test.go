package services

import (
	"context"
	"testing"
	"time"

	"github.com/sanjeebSubedi/Demake-Backend/internal/models"
	"github.com/sanjeebSubedi/Demake-Backend/internal/repository"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFeedService(t *testing.T, db *gorm.DB) *FeedService {
	t.Helper()
	return NewFeedService(
		repository.NewTweetRepository(db),
		repository.NewFollowRepository(db),
		repository.NewLikeRepository(db),
		repository.NewRetweetRepository(db),
		logger.NewNop(),
	)
}

func TestHomeFeedAllTab(t *testing.T) {
	db := openTestDB(t)
	svc := newFeedService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	base := time.Now().Add(-time.Hour)
	older := seedTweet(t, db, alice.ID, "older", base)
	newer := seedTweet(t, db, bob.ID, "newer", base.Add(time.Minute))
	seedReply(t, db, bob.ID, older.ID, "a reply", base.Add(2*time.Minute))

	require.NoError(t, db.Create(&models.Like{TweetID: older.ID, UserID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Like{TweetID: older.ID, UserID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Retweet{TweetID: newer.ID, UserID: alice.ID}).Error)

	feed, err := svc.HomeFeed(ctx, alice.ID, TabAll, 0, 20)
	require.NoError(t, err)
	require.Len(t, feed, 2, "replies never appear in the home feed")

	assert.Equal(t, newer.ID, feed[0].ID)
	assert.Equal(t, older.ID, feed[1].ID)

	assert.Equal(t, int64(2), feed[1].LikeCount)
	assert.Equal(t, int64(1), feed[1].ReplyCount)
	assert.Equal(t, int64(0), feed[1].RetweetCount)
	assert.Equal(t, int64(1), feed[0].RetweetCount)
	assert.Equal(t, "bob", feed[0].User.Username)
}

func TestHomeFeedFollowingTab(t *testing.T) {
	db := openTestDB(t)
	feedSvc := newFeedService(t, db)
	followSvc := newFollowService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	seedTweet(t, db, bob.ID, "from bob", time.Now())
	seedTweet(t, db, carol.ID, "from carol", time.Now())
	seedTweet(t, db, alice.ID, "from alice herself", time.Now())

	t.Run("no follows yet", func(t *testing.T) {
		feed, err := feedSvc.HomeFeed(ctx, alice.ID, TabFollowing, 0, 20)
		require.NoError(t, err)
		assert.Empty(t, feed)
	})

	_, err := followSvc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	feed, err := feedSvc.HomeFeed(ctx, alice.ID, TabFollowing, 0, 20)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "bob", feed[0].User.Username)
}

func TestHomeFeedPagination(t *testing.T) {
	db := openTestDB(t)
	svc := newFeedService(t, db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedTweet(t, db, alice.ID, "tweet", base.Add(time.Duration(i)*time.Minute))
	}

	page, err := svc.HomeFeed(ctx, alice.ID, TabAll, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	empty, err := svc.HomeFeed(ctx, alice.ID, TabAll, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
