package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	FullName string `form:"full_name" binding:"required,min=1,max=100"`
}

// ChannelProfile is the public view of a user as a channel.
type ChannelProfile struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	AvatarURL   *string   `json:"avatar_url"`
	CoverURL    *string   `json:"cover_url"`
	Subscribers int64     `json:"subscribers"`
	VideoCount  int64     `json:"video_count"`
	CreatedAt   time.Time `json:"created_at"`
}
