package handler

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	videoDto "github.com/cliptube/backend/internal/modules/video/dto"
	videoService "github.com/cliptube/backend/internal/modules/video/service"
	viewService "github.com/cliptube/backend/internal/modules/view/service"
	"github.com/cliptube/backend/pkg/dto"
	"github.com/cliptube/backend/pkg/logger"
	"github.com/cliptube/backend/pkg/response"
)

type VideoHandler struct {
	videoService videoService.VideoService
	viewService  viewService.ViewService
}

func NewVideoHandler(videoSvc videoService.VideoService, viewSvc viewService.ViewService) *VideoHandler {
	return &VideoHandler{
		videoService: videoSvc,
		viewService:  viewSvc,
	}
}

// openForm opens an optional multipart file. A missing file is not an
// error; the caller gets a nil reader.
func openForm(c *gin.Context, field string) (multipart.File, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	return f, header.Filename, nil
}

func (h *VideoHandler) Publish(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req videoDto.PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	video, videoName, err := openForm(c, "video")
	if err != nil {
		response.Error(c, err)
		return
	}
	if video != nil {
		defer video.Close()
	}

	thumb, thumbName, err := openForm(c, "thumbnail")
	if err != nil {
		response.Error(c, err)
		return
	}
	if thumb != nil {
		defer thumb.Close()
	}

	var videoReader, thumbReader io.Reader
	if video != nil {
		videoReader = video
	}
	if thumb != nil {
		thumbReader = thumb
	}

	detail, err := h.videoService.Publish(c.Request.Context(), userID, &req, videoReader, videoName, thumbReader, thumbName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, detail, "video published successfully")
}

func (h *VideoHandler) GetByID(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	requesterID := optionalUserID(c)

	detail, err := h.videoService.GetByID(c.Request.Context(), id, requesterID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if requesterID != nil {
		// A lost view must not fail the watch request.
		if err := h.viewService.RecordView(c.Request.Context(), id, *requesterID); err != nil {
			logger.L().Warn("failed to record view", zap.String("video_id", id.String()), zap.Error(err))
		}
	}

	response.OK(c, detail, "video retrieved successfully")
}

func (h *VideoHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	page, err := h.videoService.List(c.Request.Context(), &q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page, "videos retrieved successfully")
}

func (h *VideoHandler) ChannelVideos(c *gin.Context) {
	channelID, err := response.ParseID(c, "channel_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	page, err := h.videoService.ChannelVideos(c.Request.Context(), channelID, optionalUserID(c), &q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page, "channel videos retrieved successfully")
}

func (h *VideoHandler) Update(c *gin.Context) {
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

	var req videoDto.UpdateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	thumb, thumbName, err := openForm(c, "thumbnail")
	if err != nil {
		response.Error(c, err)
		return
	}
	var thumbReader io.Reader
	if thumb != nil {
		defer thumb.Close()
		thumbReader = thumb
	}

	detail, err := h.videoService.Update(c.Request.Context(), id, userID, &req, thumbReader, thumbName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, detail, "video updated successfully")
}

func (h *VideoHandler) Delete(c *gin.Context) {
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

	if err := h.videoService.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "video deleted successfully")
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
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

	detail, err := h.videoService.TogglePublish(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, detail, "video publish state toggled")
}

// optionalUserID returns the authenticated user when present and nil
// for anonymous requests. Used on routes behind OptionalAuth.
func optionalUserID(c *gin.Context) *uuid.UUID {
	id, err := response.GetUserID(c)
	if err != nil {
		return nil
	}
	return &id
}
