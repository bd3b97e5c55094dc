package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nptel-prep/quiz-service/internal/models"
	"github.com/nptel-prep/quiz-service/internal/repositories"
	"github.com/nptel-prep/quiz-service/internal/validator"
)

// AuthService handles the combined login/signup flow: a username that has
// never been seen is created with the supplied password and logged straight
// in. No hashing, no sessions, no tokens; the contract is a plaintext compare
// and the full stored record in the response.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
}

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return s.signup(ctx, req)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.Password != req.Password {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

func (s *authService) signup(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user := models.NewUser(req.Username, req.Password)
	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created on first login", "username", user.Username)
	return user, nil
}
