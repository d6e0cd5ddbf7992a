package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cliptube/backend/internal/entity"
	userDto "github.com/cliptube/backend/internal/modules/user/dto"
	"github.com/cliptube/backend/pkg/apperror"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	ChannelProfile(ctx context.Context, id uuid.UUID) (*userDto.ChannelProfile, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]any) (*entity.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return &user, nil
}

// ChannelProfile reads the user row and its public counters in one
// statement. Only published videos count toward the public tally.
func (r *userRepository) ChannelProfile(ctx context.Context, id uuid.UUID) (*userDto.ChannelProfile, error) {
	var profile userDto.ChannelProfile
	res := r.db.WithContext(ctx).Raw(`
		SELECT u.id, u.username, u.full_name, u.avatar_url, u.cover_url, u.created_at,
			(SELECT COUNT(*)
			   FROM engagement_edges
			  WHERE target_kind = 'channel' AND target_id = u.id) AS subscribers,
			(SELECT COUNT(*)
			   FROM videos
			  WHERE owner_id = u.id AND is_published) AS video_count
		FROM users u
		WHERE u.id = ?`, id).
		Scan(&profile)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	return &profile, nil
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, patch map[string]any) (*entity.User, error) {
	var user entity.User
	res := r.db.WithContext(ctx).Model(&user).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	return &user, nil
}
