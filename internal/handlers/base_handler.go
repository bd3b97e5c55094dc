package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nptel-prep/quiz-service/internal/services"
	"github.com/nptel-prep/quiz-service/internal/utils"
	"github.com/nptel-prep/quiz-service/internal/validator"
)

// ErrorResponse is the JSON error body for every failure the API reports
// itself (CORS rejections are surfaced by the transport instead).
type ErrorResponse struct {
	Message string                     `json:"message"`
	Details validator.ValidationErrors `json:"details,omitempty"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

// handleServiceError maps service errors to HTTP responses. Anything outside
// the domain taxonomy becomes a generic 500; details stay in the logs.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, services.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid password"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "User not found"})
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: validationErrs,
		})
	default:
		h.LogError(c, err, "unhandled service error", "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
