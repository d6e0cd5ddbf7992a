package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	playlistDto "github.com/cliptube/backend/internal/modules/playlist/dto"
	playlistService "github.com/cliptube/backend/internal/modules/playlist/service"
	"github.com/cliptube/backend/pkg/dto"
	"github.com/cliptube/backend/pkg/response"
)

type PlaylistHandler struct {
	playlistService playlistService.PlaylistService
}

func NewPlaylistHandler(svc playlistService.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: svc}
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req playlistDto.CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	playlist, err := h.playlistService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, playlist, "playlist created successfully")
}

func (h *PlaylistHandler) GetByID(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	playlist, err := h.playlistService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, playlist, "playlist retrieved successfully")
}

func (h *PlaylistHandler) ListOwn(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	page, err := h.playlistService.ListOwn(c.Request.Context(), userID, q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page, "playlists retrieved successfully")
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := response.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req playlistDto.UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	playlist, err := h.playlistService.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, playlist, "playlist updated successfully")
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := response.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.playlistService.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "playlist deleted successfully")
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := response.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req playlistDto.AddVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	videoID, _ := uuid.Parse(req.VideoID)

	if err := h.playlistService.AddVideo(c.Request.Context(), id, userID, videoID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "video added to playlist")
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := response.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	videoID, err := response.ParseID(c, "video_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.playlistService.RemoveVideo(c.Request.Context(), id, userID, videoID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "video removed from playlist")
}

func (h *PlaylistHandler) Videos(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	page, err := h.playlistService.Videos(c.Request.Context(), id, optionalUserID(c), q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page, "playlist videos retrieved successfully")
}

func optionalUserID(c *gin.Context) *uuid.UUID {
	id, err := response.GetUserID(c)
	if err != nil {
		return nil
	}
	return &id
}
