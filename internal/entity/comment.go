package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID uuid.UUID `gorm:"type:uuid;not null;index" json:"video_id"`
	Video   Video     `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
