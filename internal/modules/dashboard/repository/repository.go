package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dashboardDto "github.com/cliptube/backend/internal/modules/dashboard/dto"
)

type DashboardRepository interface {
	ChannelStats(ctx context.Context, channelID uuid.UUID) (*dashboardDto.ChannelStats, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ChannelStats computes all four aggregates as scalar subqueries in one
// statement. Subqueries instead of joins: a join across videos, likes,
// and subscribers would multiply rows and inflate every count.
func (r *dashboardRepository) ChannelStats(ctx context.Context, channelID uuid.UUID) (*dashboardDto.ChannelStats, error) {
	var stats dashboardDto.ChannelStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM videos WHERE owner_id = @channel) AS total_videos,
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = @channel) AS total_views,
			(SELECT COUNT(*)
			   FROM engagement_edges e
			   JOIN videos v ON v.id = e.target_id
			  WHERE e.target_kind = 'video' AND v.owner_id = @channel) AS total_likes,
			(SELECT COUNT(*)
			   FROM engagement_edges
			  WHERE target_kind = 'channel' AND target_id = @channel) AS total_subscribers`,
		map[string]any{"channel": channelID}).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
