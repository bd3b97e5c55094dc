// Package testutil provides in-memory fakes shared by service and handler
// tests.
package testutil

import (
	"context"
	"sort"
	"sync"

	"gorm.io/datatypes"

	"github.com/nptel-prep/quiz-service/internal/models"
	"github.com/nptel-prep/quiz-service/internal/repositories"
)

// FakeRepository is an in-memory repositories.Repository.
type FakeRepository struct {
	Users *FakeUserRepository

	// PingErr makes Ping fail, simulating a down store.
	PingErr error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Users: NewFakeUserRepository()}
}

func (r *FakeRepository) User() repositories.UserRepository { return r.Users }
func (r *FakeRepository) Migrate(ctx context.Context) error { return nil }
func (r *FakeRepository) Ping(ctx context.Context) error    { return r.PingErr }
func (r *FakeRepository) Close() error                      { return nil }

// FakeUserRepository keeps user records in a map and mirrors the ordering
// contract of the real repository (ListWithScores sorted by username).
type FakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User

	// Err, when set, is returned by every method to exercise 500 paths.
	Err error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{users: make(map[string]*models.User)}
}

func (r *FakeUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	user, ok := r.users[username]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *FakeUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func (r *FakeUserRepository) UpdateScores(ctx context.Context, username string, scores map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	user, ok := r.users[username]
	if !ok {
		return repositories.ErrNotFound
	}
	copied := make(map[string]int, len(scores))
	for k, v := range scores {
		copied[k] = v
	}
	user.Scores = datatypes.NewJSONType(copied)
	return nil
}

func (r *FakeUserRepository) ListWithScores(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Stored returns the live record for assertions.
func (r *FakeUserRepository) Stored(username string) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[username]
}
