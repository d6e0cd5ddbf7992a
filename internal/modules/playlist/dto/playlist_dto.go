package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

type UpdatePlaylistRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

type AddVideoRequest struct {
	VideoID string `json:"video_id" binding:"required,uuid"`
}

type PlaylistRow struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideoCount  int64     `json:"video_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistVideoRow flattens playlist membership with the video and its
// channel. Videos deleted after being added drop out of the join.
type PlaylistVideoRow struct {
	Position      int        `json:"position"`
	VideoID       *uuid.UUID `json:"video_id"`
	Title         *string    `json:"title"`
	ThumbnailURL  *string    `json:"thumbnail_url"`
	Duration      *float64   `json:"duration"`
	Views         *int64     `json:"views"`
	OwnerID       *uuid.UUID `json:"owner_id"`
	OwnerUsername *string    `json:"owner_username"`
}
