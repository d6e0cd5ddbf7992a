package view

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	videoRepo "github.com/cliptube/backend/internal/modules/video/repository"
	"github.com/cliptube/backend/pkg/logger"
)

const (
	userViewTTL  = time.Hour
	pendingKey   = "pending:video_views"
	syncInterval = time.Minute
)

// ViewService buffers video view counts in Redis and periodically folds
// them into the videos table. A viewer only counts once per hour per
// video.
type ViewService interface {
	RecordView(ctx context.Context, videoID, viewerID uuid.UUID) error
	StartSyncWorker(ctx context.Context)
}

type viewService struct {
	redisClient *redis.Client
	videoRepo   videoRepo.VideoRepository
}

func NewViewService(redisClient *redis.Client, videoRepo videoRepo.VideoRepository) ViewService {
	return &viewService{
		redisClient: redisClient,
		videoRepo:   videoRepo,
	}
}

func (s *viewService) RecordView(ctx context.Context, videoID, viewerID uuid.UUID) error {
	userViewKey := fmt.Sprintf("video:user_view:%s:%s", videoID, viewerID)

	// SET NX is the dedup decision and the marker write in one step.
	set, err := s.redisClient.SetNX(ctx, userViewKey, "1", userViewTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to mark user view: %w", err)
	}
	if !set {
		// Seen within the hour.
		return nil
	}

	viewKey := fmt.Sprintf("video:views:%s", videoID)
	pipe := s.redisClient.Pipeline()
	pipe.Incr(ctx, viewKey)
	pipe.SAdd(ctx, pendingKey, videoID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to buffer view: %w", err)
	}

	return nil
}

func (s *viewService) syncViewsToDB(ctx context.Context) {
	videoIDs, err := s.redisClient.SMembers(ctx, pendingKey).Result()
	if err != nil {
		logger.L().Warn("failed to read pending video views", zap.Error(err))
		return
	}
	if len(videoIDs) == 0 {
		return
	}

	for _, idStr := range videoIDs {
		videoID, err := uuid.Parse(idStr)
		if err != nil {
			s.redisClient.SRem(ctx, pendingKey, idStr)
			continue
		}

		viewKey := fmt.Sprintf("video:views:%s", videoID)
		// GETDEL takes the counter atomically; increments racing with the
		// sync land in a fresh counter and survive to the next run.
		countStr, err := s.redisClient.GetDel(ctx, viewKey).Result()
		if err == redis.Nil {
			s.redisClient.SRem(ctx, pendingKey, idStr)
			continue
		}
		if err != nil {
			logger.L().Warn("failed to take view counter", zap.String("video_id", idStr), zap.Error(err))
			continue
		}

		count, err := strconv.ParseInt(countStr, 10, 64)
		if err != nil || count <= 0 {
			s.redisClient.SRem(ctx, pendingKey, idStr)
			continue
		}

		if err := s.videoRepo.AddViews(ctx, videoID, count); err != nil {
			logger.L().Warn("failed to persist video views", zap.String("video_id", idStr), zap.Error(err))
			// Counter already taken; push it back so nothing is lost.
			s.redisClient.IncrBy(ctx, viewKey, count)
			continue
		}

		s.redisClient.SRem(ctx, pendingKey, idStr)
	}
}

func (s *viewService) StartSyncWorker(ctx context.Context) {
	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.syncViewsToDB(ctx)
		case <-ctx.Done():
			return
		}
	}
}
