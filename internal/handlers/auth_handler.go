package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nptel-prep/quiz-service/internal/models"
	"github.com/nptel-prep/quiz-service/internal/services"
	"github.com/nptel-prep/quiz-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Login handles the combined login/signup endpoint. Success returns the full
// stored user record, scores and password field included.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload"})
		return
	}

	h.LogRequest(c, "login attempt", "username", req.Username)

	user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
