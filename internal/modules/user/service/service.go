package user

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cliptube/backend/internal/entity"
	userDto "github.com/cliptube/backend/internal/modules/user/dto"
	userRepo "github.com/cliptube/backend/internal/modules/user/repository"
	"github.com/cliptube/backend/pkg/apperror"
	"github.com/cliptube/backend/pkg/logger"
	"github.com/cliptube/backend/pkg/storage"
)

type UserService interface {
	ChannelProfile(ctx context.Context, id uuid.UUID) (*userDto.ChannelProfile, error)
	ChannelProfileByUsername(ctx context.Context, username string) (*userDto.ChannelProfile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *userDto.UpdateProfileRequest, avatar io.Reader, avatarName string, cover io.Reader, coverName string) (*entity.User, error)
}

type userService struct {
	userRepo userRepo.UserRepository
	storage  storage.MediaStorage
}

func NewUserService(users userRepo.UserRepository, media storage.MediaStorage) UserService {
	return &userService{
		userRepo: users,
		storage:  media,
	}
}

func (s *userService) ChannelProfile(ctx context.Context, id uuid.UUID) (*userDto.ChannelProfile, error) {
	return s.userRepo.ChannelProfile(ctx, id)
}

func (s *userService) ChannelProfileByUsername(ctx context.Context, username string) (*userDto.ChannelProfile, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.userRepo.ChannelProfile(ctx, user.ID)
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req *userDto.UpdateProfileRequest, avatar io.Reader, avatarName string, cover io.Reader, coverName string) (*entity.User, error) {
	current, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{"full_name": req.FullName}

	var replaced []string
	if avatar != nil {
		info, err := s.storage.Upload(ctx, avatar, "avatars", avatarName)
		if err != nil {
			return nil, apperror.New(http.StatusInternalServerError, "failed to store avatar", err)
		}
		patch["avatar_url"] = info.URL
		if current.AvatarURL != nil {
			replaced = append(replaced, *current.AvatarURL)
		}
	}
	if cover != nil {
		info, err := s.storage.Upload(ctx, cover, "covers", coverName)
		if err != nil {
			return nil, apperror.New(http.StatusInternalServerError, "failed to store cover image", err)
		}
		patch["cover_url"] = info.URL
		if current.CoverURL != nil {
			replaced = append(replaced, *current.CoverURL)
		}
	}

	updated, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	for _, old := range replaced {
		if delErr := s.storage.Delete(ctx, old); delErr != nil {
			logger.L().Warn("failed to delete replaced profile image", zap.String("user_id", id.String()), zap.Error(delErr))
		}
	}

	return updated, nil
}
