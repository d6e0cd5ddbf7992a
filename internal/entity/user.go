package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User doubles as the channel: every user can own videos, posts, and
// playlists, and can be subscribed to.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:100" json:"full_name"`
	AvatarURL    *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CoverURL     *string   `gorm:"type:text" json:"cover_url,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}
