package repositories

import (
	"context"
	"errors"

	"github.com/nptel-prep/quiz-service/internal/models"
)

// ErrNotFound is returned by lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// UserRepository covers every store access the service performs.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error

	// UpdateScores replaces the full score map of an existing user. The
	// read-then-write best-score sequence is not atomic across concurrent
	// submissions; that gap is accepted (see DESIGN.md).
	UpdateScores(ctx context.Context, username string, scores map[string]int) error

	// ListWithScores returns every user projected to username and scores,
	// ordered by username so leaderboard ties are deterministic.
	ListWithScores(ctx context.Context) ([]*models.User, error)
}

// Repository aggregates the store-backed repositories and their lifecycle.
type Repository interface {
	User() UserRepository

	// Migrate creates or updates the schema. Called once the store is
	// reachable, which may be later than process start.
	Migrate(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}
