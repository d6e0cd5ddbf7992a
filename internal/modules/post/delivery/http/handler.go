package handler

import (
	"github.com/gin-gonic/gin"

	postDto "github.com/cliptube/backend/internal/modules/post/dto"
	postService "github.com/cliptube/backend/internal/modules/post/service"
	"github.com/cliptube/backend/pkg/dto"
	"github.com/cliptube/backend/pkg/response"
)

type PostHandler struct {
	postService postService.PostService
}

func NewPostHandler(svc postService.PostService) *PostHandler {
	return &PostHandler{postService: svc}
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req postDto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	post, err := h.postService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, post, "post created successfully")
}

func (h *PostHandler) ListForChannel(c *gin.Context) {
	channelID, err := response.ParseID(c, "channel_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	page, err := h.postService.ListForChannel(c.Request.Context(), channelID, q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page, "posts retrieved successfully")
}

func (h *PostHandler) Update(c *gin.Context) {
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

	var req postDto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	post, err := h.postService.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, post, "post updated successfully")
}

func (h *PostHandler) Delete(c *gin.Context) {
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

	if err := h.postService.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "post deleted successfully")
}
