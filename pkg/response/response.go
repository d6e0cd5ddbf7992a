package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	playgroundValidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cliptube/backend/pkg/apperror"
	"github.com/cliptube/backend/pkg/logger"
	"github.com/cliptube/backend/pkg/validator"
)

// Envelope is the uniform wrapper every endpoint responds with.
// Success responses carry data; failures carry a null data field.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, data any, message string) {
	Success(c, http.StatusOK, data, message)
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, data any, message string) {
	Success(c, http.StatusCreated, data, message)
}

func Success(c *gin.Context, code int, data any, message string) {
	c.JSON(code, Envelope{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// ParseID reads a path parameter as a UUID; malformed values become a
// validation failure rather than an internal error.
func ParseID(c *gin.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", strings.ReplaceAll(param, "_", " "), apperror.ErrInvalidInput)
	}
	return id, nil
}

// BadRequest writes a 400 envelope for request binding failures,
// formatting field-level validation errors when present.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Envelope{
		StatusCode: http.StatusBadRequest,
		Data:       nil,
		Message:    validator.FormatValidationError(err),
		Success:    false,
	})
}

// Error writes a failure envelope with the status mapped from err.
// Binding/validation errors collapse to 400 with a formatted message.
func Error(c *gin.Context, err error) {
	var vErrs playgroundValidator.ValidationErrors
	if errors.As(err, &vErrs) {
		c.JSON(http.StatusBadRequest, Envelope{
			StatusCode: http.StatusBadRequest,
			Data:       nil,
			Message:    validator.FormatValidationError(vErrs),
			Success:    false,
		})
		return
	}

	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		logger.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.JSON(code, Envelope{
		StatusCode: code,
		Data:       nil,
		Message:    err.Error(),
		Success:    false,
	})
}
