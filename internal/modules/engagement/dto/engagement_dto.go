package dto

import (
	"time"

	"github.com/google/uuid"
)

type ToggleLikeRequest struct {
	TargetKind string `uri:"kind" binding:"required,oneof=video comment post"`
	TargetID   string `uri:"id" binding:"required,uuid"`
}

type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
}

type ToggleSubscriptionResponse struct {
	Subscribed bool `json:"subscribed"`
}

// LikedVideoRow is the flat projection of a liked-videos page: edge
// recency plus the video and its owner's public fields. Join misses
// (video or owner since removed) surface as nulls, not dropped rows.
type LikedVideoRow struct {
	VideoID        *uuid.UUID `json:"video_id"`
	Title          *string    `json:"title"`
	ThumbnailURL   *string    `json:"thumbnail_url"`
	Duration       *float64   `json:"duration"`
	Views          *int64     `json:"views"`
	OwnerUsername  *string    `json:"owner_username"`
	OwnerAvatarURL *string    `json:"owner_avatar_url"`
	LikedAt        time.Time  `json:"liked_at"`
}

type SubscriberRow struct {
	SubscriberID *uuid.UUID `json:"subscriber_id"`
	Username     *string    `json:"username"`
	FullName     *string    `json:"full_name"`
	AvatarURL    *string    `json:"avatar_url"`
	SubscribedAt time.Time  `json:"subscribed_at"`
}

type SubscribedChannelRow struct {
	ChannelID    *uuid.UUID `json:"channel_id"`
	Username     *string    `json:"username"`
	FullName     *string    `json:"full_name"`
	AvatarURL    *string    `json:"avatar_url"`
	SubscribedAt time.Time  `json:"subscribed_at"`
}
