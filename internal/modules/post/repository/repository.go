package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cliptube/backend/internal/entity"
	postDto "github.com/cliptube/backend/internal/modules/post/dto"
	"github.com/cliptube/backend/pkg/database"
	"github.com/cliptube/backend/pkg/query"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	ListForChannel(ctx context.Context, channelID uuid.UUID, page, pageSize int) (*query.Page[postDto.PostRow], error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch map[string]any) (*entity.Post, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
	DeleteEngagementFor(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) ListForChannel(ctx context.Context, channelID uuid.UUID, page, pageSize int) (*query.Page[postDto.PostRow], error) {
	spec := query.Spec{
		Filters: []query.Filter{
			{Column: "posts.owner_id", Op: query.OpEq, Value: channelID},
		},
		Joins: []query.Join{
			{
				Table: "users",
				On:    "users.id = posts.owner_id",
				Select: []string{
					"users.id AS owner_id",
					"users.username AS owner_username",
					"users.avatar_url AS owner_avatar_url",
				},
			},
		},
		Select: []string{
			"posts.id AS id",
			"posts.content AS content",
			"posts.created_at AS created_at",
			"posts.updated_at AS updated_at",
		},
		Sort:     query.Sort{Column: "posts.created_at", Desc: true},
		TieBreak: "posts.id",
		Page:     page,
		PageSize: pageSize,
	}

	return query.Run[postDto.PostRow](ctx, r.db, &entity.Post{}, spec)
}

func (r *postRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch map[string]any) (*entity.Post, error) {
	return database.UpdateOwned[entity.Post](ctx, r.db, id, ownerID, patch)
}

func (r *postRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	return database.DeleteOwned[entity.Post](ctx, r.db, id, ownerID)
}

func (r *postRepository) DeleteEngagementFor(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id = ?", entity.TargetPost, id).
		Delete(&entity.EngagementEdge{}).Error
}
