package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nptel-prep/quiz-service/internal/models"
	"github.com/nptel-prep/quiz-service/internal/repositories"
)

// PostgreSQLRepository implements the Repository interface over a GORM
// connection pool. The pool may be opened before the server is actually
// reachable; Ping is what decides readiness.
type PostgreSQLRepository struct {
	db   *gorm.DB
	user repositories.UserRepository
}

func NewPostgreSQLRepository(db *gorm.DB) repositories.Repository {
	return &PostgreSQLRepository{
		db:   db,
		user: NewUserPostgreSQL(db),
	}
}

func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

func (r *PostgreSQLRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("auto-migrate users: %w", err)
	}
	return nil
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
