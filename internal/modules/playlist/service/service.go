package playlist

import (
	"context"

	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/entity"
	playlistDto "github.com/cliptube/backend/internal/modules/playlist/dto"
	playlistRepo "github.com/cliptube/backend/internal/modules/playlist/repository"
	videoRepo "github.com/cliptube/backend/internal/modules/video/repository"
	"github.com/cliptube/backend/pkg/apperror"
	"github.com/cliptube/backend/pkg/query"
)

type PlaylistService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *playlistDto.CreatePlaylistRequest) (*entity.Playlist, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error)
	ListOwn(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (*query.Page[playlistDto.PlaylistRow], error)
	Update(ctx context.Context, id, ownerID uuid.UUID, req *playlistDto.UpdatePlaylistRequest) (*entity.Playlist, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	AddVideo(ctx context.Context, playlistID, ownerID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, ownerID, videoID uuid.UUID) error
	Videos(ctx context.Context, playlistID uuid.UUID, requesterID *uuid.UUID, page, pageSize int) (*query.Page[playlistDto.PlaylistVideoRow], error)
}

type playlistService struct {
	playlistRepo playlistRepo.PlaylistRepository
	videoRepo    videoRepo.VideoRepository
}

func NewPlaylistService(playlists playlistRepo.PlaylistRepository, videos videoRepo.VideoRepository) PlaylistService {
	return &playlistService{
		playlistRepo: playlists,
		videoRepo:    videos,
	}
}

func (s *playlistService) Create(ctx context.Context, ownerID uuid.UUID, req *playlistDto.CreatePlaylistRequest) (*entity.Playlist, error) {
	playlist := &entity.Playlist{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *playlistService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error) {
	return s.playlistRepo.FindByID(ctx, id)
}

func (s *playlistService) ListOwn(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (*query.Page[playlistDto.PlaylistRow], error) {
	return s.playlistRepo.ListForOwner(ctx, ownerID, page, pageSize)
}

func (s *playlistService) Update(ctx context.Context, id, ownerID uuid.UUID, req *playlistDto.UpdatePlaylistRequest) (*entity.Playlist, error) {
	return s.playlistRepo.UpdateOwned(ctx, id, ownerID, map[string]any{
		"name":        req.Name,
		"description": req.Description,
	})
}

func (s *playlistService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.playlistRepo.DeleteOwned(ctx, id, ownerID)
}

// AddVideo is idempotent: adding a video that is already in the
// playlist succeeds without a second row. Zero rows from the gated
// insert therefore needs classifying, and the answer for a playlist the
// caller does not own is the same as for one that does not exist.
func (s *playlistService) AddVideo(ctx context.Context, playlistID, ownerID, videoID uuid.UUID) error {
	if _, err := s.videoRepo.FindByID(ctx, videoID); err != nil {
		return err
	}

	added, err := s.playlistRepo.AddVideo(ctx, playlistID, ownerID, videoID)
	if err != nil {
		return err
	}
	if added {
		return nil
	}

	playlist, err := s.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != ownerID {
		return apperror.ErrNotFoundOrForbidden
	}
	// Already a member.
	return nil
}

// RemoveVideo mirrors AddVideo: removing a video that is not in the
// playlist is a no-op for the owner and not-found for anyone else.
func (s *playlistService) RemoveVideo(ctx context.Context, playlistID, ownerID, videoID uuid.UUID) error {
	removed, err := s.playlistRepo.RemoveVideo(ctx, playlistID, ownerID, videoID)
	if err != nil {
		return err
	}
	if removed {
		return nil
	}

	playlist, err := s.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != ownerID {
		return apperror.ErrNotFoundOrForbidden
	}
	return nil
}

func (s *playlistService) Videos(ctx context.Context, playlistID uuid.UUID, requesterID *uuid.UUID, page, pageSize int) (*query.Page[playlistDto.PlaylistVideoRow], error) {
	playlist, err := s.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	// The owner sees their drafts inside their own playlists.
	publishedOnly := requesterID == nil || *requesterID != playlist.OwnerID

	return s.playlistRepo.Videos(ctx, playlistID, publishedOnly, page, pageSize)
}
