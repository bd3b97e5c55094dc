package services

import (
	"context"
	"log/slog"

	"github.com/nptel-prep/quiz-service/internal/cache"
	"github.com/nptel-prep/quiz-service/internal/events"
	"github.com/nptel-prep/quiz-service/internal/models"
	"github.com/nptel-prep/quiz-service/internal/repositories"
	"github.com/nptel-prep/quiz-service/internal/validator"
)

// ServiceManager aggregates the service layer for handler wiring.
type ServiceManager interface {
	Auth() AuthService
	Quiz() QuizService
	Score() ScoreService

	Shutdown(ctx context.Context) error
}

type serviceManager struct {
	authService  AuthService
	quizService  QuizService
	scoreService ScoreService
	bus          *events.Bus
}

// NewServiceManager wires the services against a repository, the static
// question set, the (optional) leaderboard cache and the event bus.
func NewServiceManager(
	repo repositories.Repository,
	lbCache *cache.LeaderboardCache,
	bus *events.Bus,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	quiz := NewQuizService(models.DefaultQuestions())

	return &serviceManager{
		authService:  NewAuthService(repo, logger, validator),
		quizService:  quiz,
		scoreService: NewScoreService(repo, quiz, lbCache, bus, logger, validator),
		bus:          bus,
	}
}

func (m *serviceManager) Auth() AuthService   { return m.authService }
func (m *serviceManager) Quiz() QuizService   { return m.quizService }
func (m *serviceManager) Score() ScoreService { return m.scoreService }

func (m *serviceManager) Shutdown(ctx context.Context) error {
	if m.bus != nil {
		return m.bus.Close()
	}
	return nil
}
