package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	FullName        string     `json:"full_name" gorm:"size:100"`
	Username        string     `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email           string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password        string     `json:"-" gorm:"size:255;not null"`
	Bio             string     `json:"bio" gorm:"type:text"`
	Location        string     `json:"location" gorm:"size:100"`
	ProfileImageURL string     `json:"profile_image_url" gorm:"type:text"`
	HeaderImageURL  string     `json:"header_image_url" gorm:"type:text"`
	BirthDate       *time.Time `json:"birth_date" gorm:"type:date"`
	VerifiedOn      *time.Time `json:"verified_on"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsVerified reports whether the account completed email verification.
func (u *User) IsVerified() bool {
	return u.VerifiedOn != nil
}

// Follow is a directed edge in the social graph. The pair is the primary
// key, so the database itself rejects duplicate edges.
type Follow struct {
	FollowerID uuid.UUID `json:"follower_id" gorm:"type:uuid;primaryKey"`
	FollowedID uuid.UUID `json:"followed_id" gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `json:"-" gorm:"foreignKey:FollowerID"`
	Followed User `json:"-" gorm:"foreignKey:FollowedID"`
}

func (User) TableName() string {
	return "users"
}

func (Follow) TableName() string {
	return "follows"
}
