package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	dashboardDto "github.com/cliptube/backend/internal/modules/dashboard/dto"
	dashboardRepo "github.com/cliptube/backend/internal/modules/dashboard/repository"
	"github.com/cliptube/backend/pkg/logger"
)

const statsCacheTTL = time.Minute

type DashboardService interface {
	ChannelStats(ctx context.Context, channelID uuid.UUID) (*dashboardDto.ChannelStats, error)
}

type dashboardService struct {
	dashboardRepo dashboardRepo.DashboardRepository
	redisClient   *redis.Client
}

func NewDashboardService(repo dashboardRepo.DashboardRepository, redisClient *redis.Client) DashboardService {
	return &dashboardService{
		dashboardRepo: repo,
		redisClient:   redisClient,
	}
}

// ChannelStats serves the rollup through a short redis cache. The cache
// is strictly an accelerator: any redis failure falls through to the
// database.
func (s *dashboardService) ChannelStats(ctx context.Context, channelID uuid.UUID) (*dashboardDto.ChannelStats, error) {
	cacheKey := fmt.Sprintf("channel:stats:%s", channelID)

	if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var stats dashboardDto.ChannelStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.dashboardRepo.ChannelStats(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.redisClient.Set(ctx, cacheKey, payload, statsCacheTTL).Err(); err != nil {
			logger.L().Warn("failed to cache channel stats", zap.String("channel_id", channelID.String()), zap.Error(err))
		}
	}

	return stats, nil
}
