package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TargetKind names what an engagement edge points at. A channel edge is
// a subscription; everything else is a like.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetPost    TargetKind = "post"
	TargetChannel TargetKind = "channel"
)

func (k TargetKind) Valid() bool {
	switch k {
	case TargetVideo, TargetComment, TargetPost, TargetChannel:
		return true
	}
	return false
}

// EngagementEdge records that one actor likes or subscribes to one
// target. At most one edge may exist per (actor, kind, target); the
// unique index is what the toggle's insert-or-delete leans on.
type EngagementEdge struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_engagement_edge,priority:1" json:"actor_id"`
	Actor      User       `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"-"`
	TargetKind TargetKind `gorm:"size:20;not null;uniqueIndex:idx_engagement_edge,priority:2;index:idx_engagement_target,priority:1" json:"target_kind"`
	TargetID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_engagement_edge,priority:3;index:idx_engagement_target,priority:2" json:"target_id"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (EngagementEdge) TableName() string {
	return "engagement_edges"
}

func (e *EngagementEdge) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID, err = uuid.NewV7()
	}
	return
}
