package handler

import (
	"github.com/gin-gonic/gin"

	dashboardService "github.com/cliptube/backend/internal/modules/dashboard/service"
	"github.com/cliptube/backend/pkg/response"
)

type DashboardHandler struct {
	dashboardService dashboardService.DashboardService
}

func NewDashboardHandler(svc dashboardService.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: svc}
}

// ChannelStats returns the rollup for the authenticated user's own
// channel.
func (h *DashboardHandler) ChannelStats(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.dashboardService.ChannelStats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, stats, "channel stats retrieved successfully")
}
