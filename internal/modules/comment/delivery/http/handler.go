package handler

import (
	"github.com/gin-gonic/gin"

	commentDto "github.com/cliptube/backend/internal/modules/comment/dto"
	commentService "github.com/cliptube/backend/internal/modules/comment/service"
	"github.com/cliptube/backend/pkg/dto"
	"github.com/cliptube/backend/pkg/response"
)

type CommentHandler struct {
	commentService commentService.CommentService
}

func NewCommentHandler(svc commentService.CommentService) *CommentHandler {
	return &CommentHandler{commentService: svc}
}

func (h *CommentHandler) Add(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	videoID, err := response.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req commentDto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	comment, err := h.commentService.Add(c.Request.Context(), videoID, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, comment, "comment added successfully")
}

func (h *CommentHandler) ListForVideo(c *gin.Context) {
	videoID, err := response.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	page, err := h.commentService.ListForVideo(c.Request.Context(), videoID, q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page, "comments retrieved successfully")
}

func (h *CommentHandler) Update(c *gin.Context) {
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

	var req commentDto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, comment, "comment updated successfully")
}

func (h *CommentHandler) Delete(c *gin.Context) {
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

	if err := h.commentService.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "comment deleted successfully")
}
