package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/repository"
)

type EnsureResult int

const (
	UserCreated EnsureResult = iota + 1
	UserAlreadyExists
)

func (r EnsureResult) String() string {
	switch r {
	case UserCreated:
		return "created"
	case UserAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

type UserService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// EnsureUser registers userID unless a row for it already exists.
func (s *UserService) EnsureUser(ctx context.Context, userID int64) (EnsureResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err == nil {
		s.logger.InfoContext(ctx, "User already exists", "user_id", user.UserID)
		return UserAlreadyExists, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	s.logger.InfoContext(ctx, "Creating new user", "user_id", userID)
	n, err := s.userRepo.Create(ctx, userID)
	if err != nil {
		// Lost a race with a concurrent /start from the same user.
		if errors.Is(err, common.ErrConflict) {
			return UserAlreadyExists, nil
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	if n == 0 {
		s.logger.ErrorContext(ctx, "Error in creating user: no rows inserted", "user_id", userID)
	} else {
		s.logger.InfoContext(ctx, "User created successfully", "user_id", userID)
	}
	return UserCreated, nil
}
