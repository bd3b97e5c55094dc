package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/nptel-prep/quiz-service/internal/cache"
	"github.com/nptel-prep/quiz-service/internal/events"
	"github.com/nptel-prep/quiz-service/internal/models"
	"github.com/nptel-prep/quiz-service/internal/repositories"
	"github.com/nptel-prep/quiz-service/internal/validator"
)

// DefaultSection is used when a submission or leaderboard query names no
// section.
const DefaultSection = "default"

// ScoreService records per-section best scores and produces leaderboards.
type ScoreService interface {
	// Submit applies the monotonic best-score rule and returns the current
	// best for the section, whether or not it changed.
	Submit(ctx context.Context, req *models.SubmitRequest) (int, error)

	Leaderboard(ctx context.Context, section string) ([]models.LeaderboardEntry, error)

	// ExportLeaderboard renders the section leaderboard as an XLSX workbook.
	ExportLeaderboard(ctx context.Context, section string) (*excelize.File, error)
}

type scoreService struct {
	repo      repositories.Repository
	quiz      QuizService
	lbCache   *cache.LeaderboardCache
	bus       *events.Bus
	logger    *slog.Logger
	validator *validator.Validator
}

func NewScoreService(
	repo repositories.Repository,
	quiz QuizService,
	lbCache *cache.LeaderboardCache,
	bus *events.Bus,
	logger *slog.Logger,
	validator *validator.Validator,
) ScoreService {
	return &scoreService{
		repo:      repo,
		quiz:      quiz,
		lbCache:   lbCache,
		bus:       bus,
		logger:    logger,
		validator: validator,
	}
}

func (s *scoreService) Submit(ctx context.Context, req *models.SubmitRequest) (int, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, err
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("lookup user: %w", err)
	}

	// A client-supplied score is trusted verbatim (practice mode); grading
	// only kicks in when the client sends none.
	var score int
	if req.Score != nil {
		score = *req.Score
	} else {
		score = s.quiz.Grade(req.Answers)
	}

	section := req.Section
	if section == "" {
		section = DefaultSection
	}

	best := user.BestScore(section)
	if score <= best {
		return best, nil
	}

	user.SetScore(section, score)
	if err := s.repo.User().UpdateScores(ctx, user.Username, user.Scores.Data()); err != nil {
		return 0, fmt.Errorf("persist scores: %w", err)
	}

	s.publishScoreUpdated(events.ScoreUpdated{
		Username: user.Username,
		Section:  section,
		Score:    score,
	})

	return score, nil
}

func (s *scoreService) Leaderboard(ctx context.Context, section string) ([]models.LeaderboardEntry, error) {
	if section == "" {
		section = DefaultSection
	}

	if entries, err := s.lbCache.Get(ctx, section); err == nil {
		return entries, nil
	}

	users, err := s.repo.User().ListWithScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, models.LeaderboardEntry{
			Username: u.Username,
			Score:    u.BestScore(section),
		})
	}

	// Stable sort keeps the repository's username ordering among ties.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if err := s.lbCache.Set(ctx, section, entries); err != nil {
		s.logger.Warn("leaderboard cache write failed", "section", section, "error", err)
	}

	return entries, nil
}

func (s *scoreService) ExportLeaderboard(ctx context.Context, section string) (*excelize.File, error) {
	if section == "" {
		section = DefaultSection
	}

	entries, err := s.Leaderboard(ctx, section)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Leaderboard"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []interface{}{"Rank", "Username", "Score"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, entry := range entries {
		row := []interface{}{i + 1, entry.Username, entry.Score}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	return f, nil
}

func (s *scoreService) publishScoreUpdated(event events.ScoreUpdated) {
	if s.bus == nil {
		return
	}
	if err := s.bus.PublishScoreUpdated(event); err != nil {
		s.logger.Warn("score event publish failed",
			"username", event.Username, "section", event.Section, "error", err)
	}
}
