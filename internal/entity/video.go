package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Video struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// VideoURL addresses the raw asset in the media store and never
	// leaves the service through listing projections.
	VideoURL     string  `gorm:"type:text;not null" json:"-"`
	ThumbnailURL string  `gorm:"type:text" json:"thumbnail_url"`
	Duration     float64 `gorm:"not null;default:0" json:"duration"`

	Views       int64 `gorm:"not null;default:0" json:"views"`
	IsPublished bool  `gorm:"not null;default:true" json:"is_published"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID, err = uuid.NewV7()
	}
	return
}
