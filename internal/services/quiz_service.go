package services

import (
	"github.com/nptel-prep/quiz-service/internal/models"
)

// QuizService serves the fixed question set and grades submissions against
// it. Questions never change during the process lifetime, so there is no
// store access and no error path here.
type QuizService interface {
	// Questions returns the quiz. With reveal false every answer field is
	// stripped; with reveal true the set is returned as-is for practice mode.
	Questions(reveal bool) []models.Question

	// Grade counts positions where answers[i] exactly matches question i's
	// correct answer. Missing or extra answer entries simply do not score.
	Grade(answers []string) int
}

type quizService struct {
	questions []models.Question
}

func NewQuizService(questions []models.Question) QuizService {
	return &quizService{questions: questions}
}

func (s *quizService) Questions(reveal bool) []models.Question {
	out := make([]models.Question, len(s.questions))
	copy(out, s.questions)
	if reveal {
		return out
	}
	for i := range out {
		out[i].Answer = ""
	}
	return out
}

func (s *quizService) Grade(answers []string) int {
	score := 0
	for i, q := range s.questions {
		if i < len(answers) && answers[i] == q.Answer {
			score++
		}
	}
	return score
}
