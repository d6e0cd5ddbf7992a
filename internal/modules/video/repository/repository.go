package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cliptube/backend/internal/entity"
	videoDto "github.com/cliptube/backend/internal/modules/video/dto"
	"github.com/cliptube/backend/pkg/apperror"
	"github.com/cliptube/backend/pkg/database"
	"github.com/cliptube/backend/pkg/query"
)

// ListParams carries the already-validated knobs for a video listing.
// SortColumn must come out of the service's whitelist.
type ListParams struct {
	Search        string
	SortColumn    string
	SortDesc      bool
	OwnerID       *uuid.UUID
	PublishedOnly bool
	Page          int
	PageSize      int
}

type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error)
	List(ctx context.Context, params ListParams) (*query.Page[videoDto.VideoRow], error)

	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch map[string]any) (*entity.Video, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
	TakeOwned(ctx context.Context, id, ownerID uuid.UUID) (*entity.Video, error)
	TogglePublish(ctx context.Context, id, ownerID uuid.UUID) (*entity.Video, error)

	AddViews(ctx context.Context, id uuid.UUID, delta int64) error
	DeleteEngagementFor(ctx context.Context, id uuid.UUID) error
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	var video entity.Video
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) List(ctx context.Context, params ListParams) (*query.Page[videoDto.VideoRow], error) {
	spec := query.Spec{
		Joins: []query.Join{
			{
				Table: "users",
				On:    "users.id = videos.owner_id",
				Select: []string{
					"users.id AS owner_id",
					"users.username AS owner_username",
					"users.avatar_url AS owner_avatar_url",
				},
			},
		},
		Select: []string{
			"videos.id AS id",
			"videos.title AS title",
			"videos.thumbnail_url AS thumbnail_url",
			"videos.duration AS duration",
			"videos.views AS views",
			"videos.created_at AS created_at",
		},
		Sort:     query.Sort{Column: params.SortColumn, Desc: params.SortDesc},
		TieBreak: "videos.id",
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	if params.PublishedOnly {
		spec.Filters = append(spec.Filters, query.Filter{Column: "videos.is_published", Op: query.OpEq, Value: true})
	}
	if params.OwnerID != nil {
		spec.Filters = append(spec.Filters, query.Filter{Column: "videos.owner_id", Op: query.OpEq, Value: *params.OwnerID})
	}
	if params.Search != "" {
		spec.Search = &query.Search{
			Text:    params.Search,
			Columns: []string{"videos.title", "videos.description"},
		}
	}

	return query.Run[videoDto.VideoRow](ctx, r.db, &entity.Video{}, spec)
}

func (r *videoRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch map[string]any) (*entity.Video, error) {
	return database.UpdateOwned[entity.Video](ctx, r.db, id, ownerID, patch)
}

func (r *videoRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	return database.DeleteOwned[entity.Video](ctx, r.db, id, ownerID)
}

func (r *videoRepository) TakeOwned(ctx context.Context, id, ownerID uuid.UUID) (*entity.Video, error) {
	return database.TakeOwned[entity.Video](ctx, r.db, id, ownerID)
}

// TogglePublish flips the flag inside the gated UPDATE itself, so the
// read of the current value and the write of its negation are one
// statement.
func (r *videoRepository) TogglePublish(ctx context.Context, id, ownerID uuid.UUID) (*entity.Video, error) {
	return database.UpdateOwned[entity.Video](ctx, r.db, id, ownerID, map[string]any{
		"is_published": gorm.Expr("NOT is_published"),
	})
}

// AddViews folds buffered view counts into the stored counter with one
// relative UPDATE; concurrent sync runs cannot lose increments.
func (r *videoRepository) AddViews(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).
		Model(&entity.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", delta)).Error
}

// DeleteEngagementFor clears like edges left behind by a deleted video.
// Edges are polymorphic, so no FK cascade covers them.
func (r *videoRepository) DeleteEngagementFor(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id = ?", entity.TargetVideo, id).
		Delete(&entity.EngagementEdge{}).Error
}
