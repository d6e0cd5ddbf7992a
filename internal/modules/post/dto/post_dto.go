package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

type UpdatePostRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

type PostRow struct {
	ID             uuid.UUID  `json:"id"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	OwnerID        *uuid.UUID `json:"owner_id"`
	OwnerUsername  *string    `json:"owner_username"`
	OwnerAvatarURL *string    `json:"owner_avatar_url"`
}
