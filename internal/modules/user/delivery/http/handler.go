package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	userDto "github.com/cliptube/backend/internal/modules/user/dto"
	userService "github.com/cliptube/backend/internal/modules/user/service"
	"github.com/cliptube/backend/pkg/response"
)

type UserHandler struct {
	userService userService.UserService
}

func NewUserHandler(svc userService.UserService) *UserHandler {
	return &UserHandler{userService: svc}
}

func (h *UserHandler) GetChannel(c *gin.Context) {
	id, err := response.ParseID(c, "channel_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.userService.ChannelProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, profile, "channel retrieved successfully")
}

func (h *UserHandler) GetChannelByUsername(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.userService.ChannelProfileByUsername(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, profile, "channel retrieved successfully")
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.userService.ChannelProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, profile, "profile retrieved successfully")
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req userDto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	var avatarReader, coverReader io.Reader
	var avatarName, coverName string

	if header, err := c.FormFile("avatar"); err == nil {
		f, err := header.Open()
		if err != nil {
			response.Error(c, err)
			return
		}
		defer f.Close()
		avatarReader, avatarName = f, header.Filename
	}
	if header, err := c.FormFile("cover"); err == nil {
		f, err := header.Open()
		if err != nil {
			response.Error(c, err)
			return
		}
		defer f.Close()
		coverReader, coverName = f, header.Filename
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req, avatarReader, avatarName, coverReader, coverName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user, "profile updated successfully")
}
