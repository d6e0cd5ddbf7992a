package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	engagementDto "github.com/cliptube/backend/internal/modules/engagement/dto"
	engagement "github.com/cliptube/backend/internal/modules/engagement/service"
	commonDto "github.com/cliptube/backend/pkg/dto"
	"github.com/cliptube/backend/pkg/response"
)

type EngagementHandler struct {
	service engagement.EngagementService
}

func NewEngagementHandler(service engagement.EngagementService) *EngagementHandler {
	return &EngagementHandler{service: service}
}

func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	var req engagementDto.ToggleLikeRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	actorID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		response.BadRequest(c, err)
		return
	}

	liked, err := h.service.ToggleLike(c.Request.Context(), actorID, req.TargetKind, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	msg := "like removed"
	if liked {
		msg = "like added"
	}
	response.OK(c, engagementDto.ToggleLikeResponse{Liked: liked}, msg)
}

func (h *EngagementHandler) ToggleSubscription(c *gin.Context) {
	channelID, err := response.ParseID(c, "channel_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	actorID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	subscribed, err := h.service.ToggleSubscription(c.Request.Context(), actorID, channelID)
	if err != nil {
		response.Error(c, err)
		return
	}

	msg := "unsubscribed from channel"
	if subscribed {
		msg = "subscribed to channel"
	}
	response.OK(c, engagementDto.ToggleSubscriptionResponse{Subscribed: subscribed}, msg)
}

func (h *EngagementHandler) GetLikedVideos(c *gin.Context) {
	var pq commonDto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.BadRequest(c, err)
		return
	}

	actorID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.service.GetLikedVideos(c.Request.Context(), actorID, pq.Page, pq.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page, "liked videos fetched successfully")
}

func (h *EngagementHandler) GetChannelSubscribers(c *gin.Context) {
	channelID, err := response.ParseID(c, "channel_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var pq commonDto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.BadRequest(c, err)
		return
	}

	page, err := h.service.GetChannelSubscribers(c.Request.Context(), channelID, pq.Page, pq.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page, "subscriber list fetched successfully")
}

func (h *EngagementHandler) GetSubscribedChannels(c *gin.Context) {
	actorID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var pq commonDto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.BadRequest(c, err)
		return
	}

	page, err := h.service.GetSubscribedChannels(c.Request.Context(), actorID, pq.Page, pq.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page, "subscribed channels fetched successfully")
}
