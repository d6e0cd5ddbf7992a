package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cliptube/backend/internal/entity"
	commentDto "github.com/cliptube/backend/internal/modules/comment/dto"
	"github.com/cliptube/backend/pkg/database"
	"github.com/cliptube/backend/pkg/query"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	ListForVideo(ctx context.Context, videoID uuid.UUID, page, pageSize int) (*query.Page[commentDto.CommentRow], error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch map[string]any) (*entity.Comment, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
	DeleteEngagementFor(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ListForVideo(ctx context.Context, videoID uuid.UUID, page, pageSize int) (*query.Page[commentDto.CommentRow], error) {
	spec := query.Spec{
		Filters: []query.Filter{
			{Column: "comments.video_id", Op: query.OpEq, Value: videoID},
		},
		Joins: []query.Join{
			{
				Table: "users",
				On:    "users.id = comments.owner_id",
				Select: []string{
					"users.id AS owner_id",
					"users.username AS owner_username",
					"users.avatar_url AS owner_avatar_url",
				},
			},
		},
		Select: []string{
			"comments.id AS id",
			"comments.video_id AS video_id",
			"comments.content AS content",
			"comments.created_at AS created_at",
			"comments.updated_at AS updated_at",
		},
		Sort:     query.Sort{Column: "comments.created_at", Desc: true},
		TieBreak: "comments.id",
		Page:     page,
		PageSize: pageSize,
	}

	return query.Run[commentDto.CommentRow](ctx, r.db, &entity.Comment{}, spec)
}

func (r *commentRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch map[string]any) (*entity.Comment, error) {
	return database.UpdateOwned[entity.Comment](ctx, r.db, id, ownerID, patch)
}

func (r *commentRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	return database.DeleteOwned[entity.Comment](ctx, r.db, id, ownerID)
}

func (r *commentRepository) DeleteEngagementFor(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id = ?", entity.TargetComment, id).
		Delete(&entity.EngagementEdge{}).Error
}
