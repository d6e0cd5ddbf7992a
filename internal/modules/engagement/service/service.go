package engagement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/entity"
	engagementDto "github.com/cliptube/backend/internal/modules/engagement/dto"
	engagementRepo "github.com/cliptube/backend/internal/modules/engagement/repository"
	"github.com/cliptube/backend/pkg/apperror"
	"github.com/cliptube/backend/pkg/query"
)

type EngagementService interface {
	// ToggleLike flips the like edge and returns whether the target is
	// liked afterwards.
	ToggleLike(ctx context.Context, actorID uuid.UUID, kind string, targetID uuid.UUID) (bool, error)
	// ToggleSubscription flips the subscription edge to a channel.
	ToggleSubscription(ctx context.Context, actorID, channelID uuid.UUID) (bool, error)

	GetLikedVideos(ctx context.Context, actorID uuid.UUID, page, pageSize int) (*query.Page[engagementDto.LikedVideoRow], error)
	GetChannelSubscribers(ctx context.Context, channelID uuid.UUID, page, pageSize int) (*query.Page[engagementDto.SubscriberRow], error)
	GetSubscribedChannels(ctx context.Context, actorID uuid.UUID, page, pageSize int) (*query.Page[engagementDto.SubscribedChannelRow], error)
}

type engagementService struct {
	repo engagementRepo.EngagementRepository
}

func NewEngagementService(repo engagementRepo.EngagementRepository) EngagementService {
	return &engagementService{repo: repo}
}

func (s *engagementService) ToggleLike(ctx context.Context, actorID uuid.UUID, kind string, targetID uuid.UUID) (bool, error) {
	targetKind := entity.TargetKind(kind)
	if !targetKind.Valid() || targetKind == entity.TargetChannel {
		return false, fmt.Errorf("%q is not a likeable target: %w", kind, apperror.ErrInvalidInput)
	}
	if targetID == uuid.Nil {
		return false, fmt.Errorf("target id is required: %w", apperror.ErrInvalidInput)
	}
	return s.repo.Toggle(ctx, actorID, targetKind, targetID)
}

func (s *engagementService) ToggleSubscription(ctx context.Context, actorID, channelID uuid.UUID) (bool, error) {
	if channelID == uuid.Nil {
		return false, fmt.Errorf("channel id is required: %w", apperror.ErrInvalidInput)
	}
	if channelID == actorID {
		return false, fmt.Errorf("cannot subscribe to your own channel: %w", apperror.ErrInvalidInput)
	}
	return s.repo.Toggle(ctx, actorID, entity.TargetChannel, channelID)
}

func (s *engagementService) GetLikedVideos(ctx context.Context, actorID uuid.UUID, page, pageSize int) (*query.Page[engagementDto.LikedVideoRow], error) {
	return s.repo.LikedVideos(ctx, actorID, page, pageSize)
}

func (s *engagementService) GetChannelSubscribers(ctx context.Context, channelID uuid.UUID, page, pageSize int) (*query.Page[engagementDto.SubscriberRow], error) {
	return s.repo.Subscribers(ctx, channelID, page, pageSize)
}

func (s *engagementService) GetSubscribedChannels(ctx context.Context, actorID uuid.UUID, page, pageSize int) (*query.Page[engagementDto.SubscribedChannelRow], error) {
	return s.repo.SubscribedChannels(ctx, actorID, page, pageSize)
}
