package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cliptube/backend/internal/entity"
	engagementDto "github.com/cliptube/backend/internal/modules/engagement/dto"
	"github.com/cliptube/backend/pkg/query"
)

type EngagementRepository interface {
	// Toggle flips the edge for (actor, kind, target) and reports
	// whether the edge exists afterwards.
	Toggle(ctx context.Context, actorID uuid.UUID, kind entity.TargetKind, targetID uuid.UUID) (bool, error)
	CountForTarget(ctx context.Context, kind entity.TargetKind, targetID uuid.UUID) (int64, error)
	HasEdge(ctx context.Context, actorID uuid.UUID, kind entity.TargetKind, targetID uuid.UUID) (bool, error)

	LikedVideos(ctx context.Context, actorID uuid.UUID, page, pageSize int) (*query.Page[engagementDto.LikedVideoRow], error)
	Subscribers(ctx context.Context, channelID uuid.UUID, page, pageSize int) (*query.Page[engagementDto.SubscriberRow], error)
	SubscribedChannels(ctx context.Context, actorID uuid.UUID, page, pageSize int) (*query.Page[engagementDto.SubscribedChannelRow], error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// Toggle is a single atomic insert-if-absent, else delete. The insert
// rides on the unique (actor_id, target_kind, target_id) index with
// ON CONFLICT DO NOTHING; when it inserts nothing the edge already
// existed and the delete branch fires. There is no read-then-write
// window, so concurrent duplicate requests cannot produce a second
// edge or a double deletion.
func (r *engagementRepository) Toggle(ctx context.Context, actorID uuid.UUID, kind entity.TargetKind, targetID uuid.UUID) (bool, error) {
	edge := entity.EngagementEdge{
		ActorID:    actorID,
		TargetKind: kind,
		TargetID:   targetID,
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "actor_id"},
				{Name: "target_kind"},
				{Name: "target_id"},
			},
			DoNothing: true,
		}).
		Create(&edge)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	del := r.db.WithContext(ctx).
		Where("actor_id = ? AND target_kind = ? AND target_id = ?", actorID, kind, targetID).
		Delete(&entity.EngagementEdge{})
	if del.Error != nil {
		return false, del.Error
	}
	// A concurrent request may have deleted the edge first; either way
	// the edge is gone now.
	return false, nil
}

func (r *engagementRepository) CountForTarget(ctx context.Context, kind entity.TargetKind, targetID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.EngagementEdge{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) HasEdge(ctx context.Context, actorID uuid.UUID, kind entity.TargetKind, targetID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.EngagementEdge{}).
		Where("actor_id = ? AND target_kind = ? AND target_id = ?", actorID, kind, targetID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) LikedVideos(ctx context.Context, actorID uuid.UUID, page, pageSize int) (*query.Page[engagementDto.LikedVideoRow], error) {
	spec := query.Spec{
		Filters: []query.Filter{
			{Column: "engagement_edges.actor_id", Op: query.OpEq, Value: actorID},
			{Column: "engagement_edges.target_kind", Op: query.OpEq, Value: entity.TargetVideo},
		},
		Joins: []query.Join{
			{
				Table: "videos",
				On:    "videos.id = engagement_edges.target_id",
				Select: []string{
					"videos.id AS video_id",
					"videos.title AS title",
					"videos.thumbnail_url AS thumbnail_url",
					"videos.duration AS duration",
					"videos.views AS views",
				},
			},
			{
				Table: "users",
				On:    "users.id = videos.owner_id",
				Select: []string{
					"users.username AS owner_username",
					"users.avatar_url AS owner_avatar_url",
				},
			},
		},
		Select:   []string{"engagement_edges.created_at AS liked_at"},
		Sort:     query.Sort{Column: "engagement_edges.created_at", Desc: true},
		TieBreak: "engagement_edges.id",
		Page:     page,
		PageSize: pageSize,
	}
	return query.Run[engagementDto.LikedVideoRow](ctx, r.db, &entity.EngagementEdge{}, spec)
}

func (r *engagementRepository) Subscribers(ctx context.Context, channelID uuid.UUID, page, pageSize int) (*query.Page[engagementDto.SubscriberRow], error) {
	spec := query.Spec{
		Filters: []query.Filter{
			{Column: "engagement_edges.target_kind", Op: query.OpEq, Value: entity.TargetChannel},
			{Column: "engagement_edges.target_id", Op: query.OpEq, Value: channelID},
		},
		Joins: []query.Join{
			{
				Table: "users",
				On:    "users.id = engagement_edges.actor_id",
				Select: []string{
					"users.id AS subscriber_id",
					"users.username AS username",
					"users.full_name AS full_name",
					"users.avatar_url AS avatar_url",
				},
			},
		},
		Select:   []string{"engagement_edges.created_at AS subscribed_at"},
		Sort:     query.Sort{Column: "engagement_edges.created_at", Desc: true},
		TieBreak: "engagement_edges.id",
		Page:     page,
		PageSize: pageSize,
	}
	return query.Run[engagementDto.SubscriberRow](ctx, r.db, &entity.EngagementEdge{}, spec)
}

func (r *engagementRepository) SubscribedChannels(ctx context.Context, actorID uuid.UUID, page, pageSize int) (*query.Page[engagementDto.SubscribedChannelRow], error) {
	spec := query.Spec{
		Filters: []query.Filter{
			{Column: "engagement_edges.actor_id", Op: query.OpEq, Value: actorID},
			{Column: "engagement_edges.target_kind", Op: query.OpEq, Value: entity.TargetChannel},
		},
		Joins: []query.Join{
			{
				Table: "users",
				On:    "users.id = engagement_edges.target_id",
				Select: []string{
					"users.id AS channel_id",
					"users.username AS username",
					"users.full_name AS full_name",
					"users.avatar_url AS avatar_url",
				},
			},
		},
		Select:   []string{"engagement_edges.created_at AS subscribed_at"},
		Sort:     query.Sort{Column: "engagement_edges.created_at", Desc: true},
		TieBreak: "engagement_edges.id",
		Page:     page,
		PageSize: pageSize,
	}
	return query.Run[engagementDto.SubscribedChannelRow](ctx, r.db, &entity.EngagementEdge{}, spec)
}
