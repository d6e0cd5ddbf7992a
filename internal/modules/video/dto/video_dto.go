package dto

import (
	"time"

	"github.com/google/uuid"
)

type PublishVideoRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"required"`
}

type UpdateVideoRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"required"`
}

// VideoRow is the listing projection: public fields only, owner
// enrichment flattened in. The raw media URL never appears here.
type VideoRow struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	ThumbnailURL   *string    `json:"thumbnail_url"`
	Duration       float64    `json:"duration"`
	Views          int64      `json:"views"`
	CreatedAt      time.Time  `json:"created_at"`
	OwnerID        *uuid.UUID `json:"owner_id"`
	OwnerUsername  *string    `json:"owner_username"`
	OwnerAvatarURL *string    `json:"owner_avatar_url"`
}

// VideoDetail is the single-video response. The playback URL is
// included here and only here.
type VideoDetail struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	IsLiked      bool      `json:"is_liked"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
