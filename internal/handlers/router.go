package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nptel-prep/quiz-service/internal/health"
	"github.com/nptel-prep/quiz-service/internal/models"
	"github.com/nptel-prep/quiz-service/internal/services"
	"github.com/nptel-prep/quiz-service/internal/utils"
)

type HandlerManager struct {
	authHandler     *AuthHandler
	questionHandler *QuestionHandler
	scoreHandler    *ScoreHandler
	prober          health.Prober
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	prober health.Prober,
) *HandlerManager {
	return &HandlerManager{
		authHandler:     NewAuthHandler(serviceManager.Auth(), logger),
		questionHandler: NewQuestionHandler(serviceManager.Quiz(), logger),
		scoreHandler:    NewScoreHandler(serviceManager.Score(), logger),
		prober:          prober,
	}
}

// SetupRoutes sets up all API routes. Every /api route sits behind the
// store-readiness gate; /health never does.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.Use(DatabaseReadyMiddleware(hm.prober))
	{
		api.POST("/login", hm.authHandler.Login)
		api.GET("/questions", hm.questionHandler.ListQuestions)
		api.POST("/submit", hm.scoreHandler.SubmitScore)
		api.GET("/leaderboard", hm.scoreHandler.GetLeaderboard)
		api.GET("/leaderboard/export", hm.scoreHandler.ExportLeaderboard)
	}

	router.GET("/health", hm.HealthCheck)
}

// HealthCheck reports liveness plus the same store view the gate uses.
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	db := "disconnected"
	if hm.prober.Connected() {
		db = "connected"
	}
	c.JSON(http.StatusOK, models.HealthResponse{OK: true, DB: db})
}
