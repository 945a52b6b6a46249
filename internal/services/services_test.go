package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/auth"
	"github.com/sanjeebSubedi/Demake-Backend/internal/models"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/queue"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// openTestDB opens a fresh in-memory database per test. Each database is
// named so connections from the pool share the same instance.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tweet{},
		&models.Retweet{},
		&models.Like{},
		&models.Comment{},
	)
	require.NoError(t, err)

	return db
}

// memoryPublisher records published events instead of touching Kafka.
type memoryPublisher struct {
	mu     sync.Mutex
	events []queue.Event
}

func (p *memoryPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if event, ok := value.(queue.Event); ok {
		p.events = append(p.events, event)
	}
	return nil
}

func (p *memoryPublisher) eventTypes() []queue.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]queue.EventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hashed, err := auth.HashPassword("password123")
	require.NoError(t, err)

	now := time.Now()
	user := &models.User{
		Username:   username,
		Email:      username + "@example.com",
		Password:   hashed,
		FullName:   "Test " + username,
		VerifiedOn: &now,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedTweet(t *testing.T, db *gorm.DB, userID uuid.UUID, content string, createdAt time.Time) *models.Tweet {
	t.Helper()

	tweet := &models.Tweet{
		UserID:    userID,
		Content:   content,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(tweet).Error)
	return tweet
}

func seedReply(t *testing.T, db *gorm.DB, userID, parentID uuid.UUID, content string, createdAt time.Time) *models.Tweet {
	t.Helper()

	tweet := &models.Tweet{
		UserID:        userID,
		Content:       content,
		ParentTweetID: &parentID,
		CreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(tweet).Error)
	return tweet
}
