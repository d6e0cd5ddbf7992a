package video

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cliptube/backend/internal/entity"
	searchService "github.com/cliptube/backend/internal/modules/search/service"
	videoDto "github.com/cliptube/backend/internal/modules/video/dto"
	videoRepo "github.com/cliptube/backend/internal/modules/video/repository"
	"github.com/cliptube/backend/pkg/apperror"
	pkgDto "github.com/cliptube/backend/pkg/dto"
	"github.com/cliptube/backend/pkg/logger"
	"github.com/cliptube/backend/pkg/query"
	"github.com/cliptube/backend/pkg/storage"
)

// videoSortColumns whitelists client sort keys and maps them onto real
// columns, so the caller never names a column directly.
var videoSortColumns = map[string]string{
	"created_at": "videos.created_at",
	"views":      "videos.views",
	"duration":   "videos.duration",
	"title":      "videos.title",
}

// EngagementReader is the slice of the engagement repository the video
// detail response needs for its like enrichment.
type EngagementReader interface {
	CountForTarget(ctx context.Context, kind entity.TargetKind, targetID uuid.UUID) (int64, error)
	HasEdge(ctx context.Context, actorID uuid.UUID, kind entity.TargetKind, targetID uuid.UUID) (bool, error)
}

type VideoService interface {
	Publish(ctx context.Context, ownerID uuid.UUID, req *videoDto.PublishVideoRequest, video io.Reader, videoName string, thumb io.Reader, thumbName string) (*videoDto.VideoDetail, error)
	GetByID(ctx context.Context, id uuid.UUID, requesterID *uuid.UUID) (*videoDto.VideoDetail, error)
	List(ctx context.Context, q *pkgDto.ListQuery) (*query.Page[videoDto.VideoRow], error)
	ChannelVideos(ctx context.Context, channelID uuid.UUID, requesterID *uuid.UUID, q *pkgDto.ListQuery) (*query.Page[videoDto.VideoRow], error)
	Update(ctx context.Context, id, ownerID uuid.UUID, req *videoDto.UpdateVideoRequest, thumb io.Reader, thumbName string) (*videoDto.VideoDetail, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	TogglePublish(ctx context.Context, id, ownerID uuid.UUID) (*videoDto.VideoDetail, error)
}

type videoService struct {
	videoRepo  videoRepo.VideoRepository
	engagement EngagementReader
	storage    storage.MediaStorage
	search     searchService.SearchService
}

func NewVideoService(repo videoRepo.VideoRepository, engagement EngagementReader, media storage.MediaStorage, search searchService.SearchService) VideoService {
	return &videoService{
		videoRepo:  repo,
		engagement: engagement,
		storage:    media,
		search:     search,
	}
}

func (s *videoService) Publish(ctx context.Context, ownerID uuid.UUID, req *videoDto.PublishVideoRequest, video io.Reader, videoName string, thumb io.Reader, thumbName string) (*videoDto.VideoDetail, error) {
	if video == nil {
		return nil, apperror.New(http.StatusBadRequest, "video file is required", nil)
	}

	uploaded, err := s.storage.Upload(ctx, video, "videos", videoName)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "failed to store video file", err)
	}

	row := &entity.Video{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    uploaded.URL,
		Duration:    uploaded.Duration,
		IsPublished: true,
	}

	if thumb != nil {
		thumbInfo, err := s.storage.Upload(ctx, thumb, "thumbnails", thumbName)
		if err != nil {
			return nil, apperror.New(http.StatusInternalServerError, "failed to store thumbnail", err)
		}
		row.ThumbnailURL = thumbInfo.URL
	}

	if err := s.videoRepo.Create(ctx, row); err != nil {
		// The asset is already in the media store; reclaim it.
		if delErr := s.storage.Delete(ctx, uploaded.URL); delErr != nil {
			logger.L().Warn("failed to clean up orphaned video asset", zap.Error(delErr))
		}
		return nil, err
	}

	s.search.IndexVideo(row)

	return toVideoDetail(row), nil
}

func (s *videoService) GetByID(ctx context.Context, id uuid.UUID, requesterID *uuid.UUID) (*videoDto.VideoDetail, error) {
	video, err := s.videoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Unpublished videos exist only for their owner; to anyone else the
	// answer is the same as for a video that was never there.
	if !video.IsPublished && (requesterID == nil || *requesterID != video.OwnerID) {
		return nil, apperror.ErrNotFoundOrForbidden
	}

	return s.withEngagement(ctx, toVideoDetail(video), requesterID)
}

// withEngagement fills in the like count and, for authenticated
// requesters, whether they liked the video themselves.
func (s *videoService) withEngagement(ctx context.Context, detail *videoDto.VideoDetail, requesterID *uuid.UUID) (*videoDto.VideoDetail, error) {
	likes, err := s.engagement.CountForTarget(ctx, entity.TargetVideo, detail.ID)
	if err != nil {
		return nil, err
	}
	detail.Likes = likes

	if requesterID != nil {
		liked, err := s.engagement.HasEdge(ctx, *requesterID, entity.TargetVideo, detail.ID)
		if err != nil {
			return nil, err
		}
		detail.IsLiked = liked
	}

	return detail, nil
}

func (s *videoService) List(ctx context.Context, q *pkgDto.ListQuery) (*query.Page[videoDto.VideoRow], error) {
	params, err := listParams(q)
	if err != nil {
		return nil, err
	}
	params.PublishedOnly = true
	return s.videoRepo.List(ctx, params)
}

func (s *videoService) ChannelVideos(ctx context.Context, channelID uuid.UUID, requesterID *uuid.UUID, q *pkgDto.ListQuery) (*query.Page[videoDto.VideoRow], error) {
	params, err := listParams(q)
	if err != nil {
		return nil, err
	}
	params.OwnerID = &channelID
	// Owners see their own drafts in the channel listing.
	params.PublishedOnly = requesterID == nil || *requesterID != channelID
	return s.videoRepo.List(ctx, params)
}

func (s *videoService) Update(ctx context.Context, id, ownerID uuid.UUID, req *videoDto.UpdateVideoRequest, thumb io.Reader, thumbName string) (*videoDto.VideoDetail, error) {
	patch := map[string]any{
		"title":       req.Title,
		"description": req.Description,
	}

	var oldThumb string
	if thumb != nil {
		current, err := s.videoRepo.TakeOwned(ctx, id, ownerID)
		if err != nil {
			return nil, err
		}
		oldThumb = current.ThumbnailURL

		thumbInfo, err := s.storage.Upload(ctx, thumb, "thumbnails", thumbName)
		if err != nil {
			return nil, apperror.New(http.StatusInternalServerError, "failed to store thumbnail", err)
		}
		patch["thumbnail_url"] = thumbInfo.URL
	}

	updated, err := s.videoRepo.UpdateOwned(ctx, id, ownerID, patch)
	if err != nil {
		return nil, err
	}

	if oldThumb != "" {
		if delErr := s.storage.Delete(ctx, oldThumb); delErr != nil {
			logger.L().Warn("failed to delete replaced thumbnail", zap.String("video_id", id.String()), zap.Error(delErr))
		}
	}

	s.search.IndexVideo(updated)

	return s.withEngagement(ctx, toVideoDetail(updated), &ownerID)
}

func (s *videoService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	// Snapshot the asset URLs first; the gated delete that follows is
	// still the single authorization decision.
	video, err := s.videoRepo.TakeOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.videoRepo.DeleteEngagementFor(ctx, id); err != nil {
		logger.L().Warn("failed to clear like edges for deleted video", zap.String("video_id", id.String()), zap.Error(err))
	}

	if video.VideoURL != "" {
		if err := s.storage.Delete(ctx, video.VideoURL); err != nil {
			logger.L().Warn("failed to delete video asset", zap.String("video_id", id.String()), zap.Error(err))
		}
	}
	if video.ThumbnailURL != "" {
		if err := s.storage.Delete(ctx, video.ThumbnailURL); err != nil {
			logger.L().Warn("failed to delete thumbnail asset", zap.String("video_id", id.String()), zap.Error(err))
		}
	}

	s.search.RemoveVideo(id.String())

	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, id, ownerID uuid.UUID) (*videoDto.VideoDetail, error) {
	updated, err := s.videoRepo.TogglePublish(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	s.search.IndexVideo(updated)

	return s.withEngagement(ctx, toVideoDetail(updated), &ownerID)
}

func listParams(q *pkgDto.ListQuery) (videoRepo.ListParams, error) {
	sortColumn := videoSortColumns["created_at"]
	desc := true
	if q.SortBy != "" {
		col, ok := videoSortColumns[q.SortBy]
		if !ok {
			return videoRepo.ListParams{}, apperror.New(http.StatusBadRequest, "unsupported sort field: "+q.SortBy, nil)
		}
		sortColumn = col
	}
	if q.SortDir == "asc" {
		desc = false
	}

	return videoRepo.ListParams{
		Search:     q.Search,
		SortColumn: sortColumn,
		SortDesc:   desc,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}

func toVideoDetail(v *entity.Video) *videoDto.VideoDetail {
	return &videoDto.VideoDetail{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		Views:        v.Views,
		IsPublished:  v.IsPublished,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
