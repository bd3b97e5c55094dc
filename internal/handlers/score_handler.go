package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nptel-prep/quiz-service/internal/models"
	"github.com/nptel-prep/quiz-service/internal/services"
	"github.com/nptel-prep/quiz-service/internal/utils"
)

type ScoreHandler struct {
	BaseHandler
	scoreService services.ScoreService
}

func NewScoreHandler(scoreService services.ScoreService, logger utils.Logger) *ScoreHandler {
	return &ScoreHandler{
		BaseHandler: NewBaseHandler(logger),
		scoreService: scoreService,
	}
}

// SubmitScore records a quiz submission and responds with the current best
// for the section, changed or not.
func (h *ScoreHandler) SubmitScore(c *gin.Context) {
	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload"})
		return
	}

	h.LogRequest(c, "score submission", "username", req.Username, "section", req.Section)

	best, err := h.scoreService.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SubmitResponse{Score: best})
}

// GetLeaderboard returns the per-section leaderboard, score descending.
func (h *ScoreHandler) GetLeaderboard(c *gin.Context) {
	section := c.Query("section")

	entries, err := h.scoreService.Leaderboard(c.Request.Context(), section)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ExportLeaderboard streams the section leaderboard as an XLSX workbook.
func (h *ScoreHandler) ExportLeaderboard(c *gin.Context) {
	section := c.Query("section")

	h.LogRequest(c, "leaderboard export", "section", section)

	f, err := h.scoreService.ExportLeaderboard(c.Request.Context(), section)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		h.LogError(c, err, "leaderboard export write failed")
	}
}
