package pkg

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nptel-prep/quiz-service/internal/config"
)

// ErrNoDatabaseURL signals that the store was never configured. Callers keep
// running; the readiness gate holds /api at 503.
var ErrNoDatabaseURL = errors.New("DATABASE_URL not set")

// InitDatabase opens the Postgres connection pool. Opening is lazy
// (automatic ping disabled) so a store that is down or still provisioning at
// startup does not fail the process; the readiness prober decides when the
// connection is actually usable.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, ErrNoDatabaseURL
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	return db, nil
}

// NewRedisClient builds the optional leaderboard-cache client from REDIS_URL.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}
