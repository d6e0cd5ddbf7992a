package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentRow is the listing projection with the author flattened in.
type CommentRow struct {
	ID             uuid.UUID  `json:"id"`
	VideoID        uuid.UUID  `json:"video_id"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	OwnerID        *uuid.UUID `json:"owner_id"`
	OwnerUsername  *string    `json:"owner_username"`
	OwnerAvatarURL *string    `json:"owner_avatar_url"`
}
