package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxTweetLength is the hard cap on tweet content.
const MaxTweetLength = 280

type Tweet struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	UserID        uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Content       string     `json:"content" gorm:"type:text;not null"`
	MediaURL      *string    `json:"media_url"`
	ParentTweetID *uuid.UUID `json:"parent_tweet_id" gorm:"type:uuid;index"`
	CreatedAt     time.Time  `json:"created_at" gorm:"index"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

func (t *Tweet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsReply reports whether the tweet is attached to a parent tweet.
func (t *Tweet) IsReply() bool {
	return t.ParentTweetID != nil
}

type Retweet struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	TweetID   uuid.UUID `json:"tweet_id" gorm:"type:uuid;not null;uniqueIndex:uq_retweet_tweet_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:uq_retweet_tweet_user"`
	CreatedAt time.Time `json:"created_at"`

	Tweet Tweet `json:"-" gorm:"foreignKey:TweetID"`
	User  User  `json:"-" gorm:"foreignKey:UserID"`
}

func (r *Retweet) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Like struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	TweetID   uuid.UUID `json:"tweet_id" gorm:"type:uuid;not null;uniqueIndex:uq_like_tweet_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:uq_like_tweet_user"`
	CreatedAt time.Time `json:"created_at"`

	Tweet Tweet `json:"-" gorm:"foreignKey:TweetID"`
	User  User  `json:"-" gorm:"foreignKey:UserID"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type Comment struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	UserID          uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	CommentText     string     `json:"comment_text" gorm:"type:text;not null"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id" gorm:"type:uuid;index"`
	CreatedAt       time.Time  `json:"created_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Tweet) TableName() string {
	return "tweets"
}

func (Retweet) TableName() string {
	return "retweets"
}

func (Like) TableName() string {
	return "likes"
}

func (Comment) TableName() string {
	return "comments"
}
