package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nptel-prep/quiz-service/internal/services"
	"github.com/nptel-prep/quiz-service/internal/utils"
)

type QuestionHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewQuestionHandler(quizService services.QuizService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
	}
}

// ListQuestions returns the fixed question set. Answers are included only
// when the reveal query parameter is exactly "true" (practice mode).
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	reveal := c.Query("reveal") == "true"
	c.JSON(http.StatusOK, h.quizService.Questions(reveal))
}
