package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Playlist struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

// PlaylistVideo keeps the ordered membership of a playlist. A video can
// appear at most once per playlist; the unique index backs that up.
type PlaylistVideo struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaylistID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_playlist_video,priority:1" json:"playlist_id"`
	Playlist   Playlist  `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"-"`
	VideoID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_playlist_video,priority:2" json:"video_id"`
	Video      Video     `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	Position   int       `gorm:"not null" json:"position"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
