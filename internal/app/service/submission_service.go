package service

import (
	"context"
	"fmt"
	"log/slog"

	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/model"
	"practice_tracker/internal/domain/repository"

	"github.com/go-playground/validator/v10"
)

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	users          *UserService
	validate       *validator.Validate
	logger         *slog.Logger
}

func NewSubmissionService(subRepo repository.SubmissionRepository, users *UserService, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{
		submissionRepo: subRepo,
		users:          users,
		validate:       validator.New(),
		logger:         logger,
	}
}

// Create stores a completed draft for userID. It reports false when the store
// accepted the statement but inserted nothing.
func (s *SubmissionService) Create(ctx context.Context, userID int64, draft *model.SubmissionDraft) (bool, error) {
	if err := s.validate.Struct(draft); err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	// submission.user references "user".user_id.
	if _, err := s.users.EnsureUser(ctx, userID); err != nil {
		return false, err
	}

	submission := &model.Submission{
		UserID:         userID,
		Name:           draft.Name,
		SolveMethod:    draft.SolveMethod,
		TimeComplexity: draft.TimeComplexity,
		Difficulty:     draft.Difficulty,
	}
	n, err := s.submissionRepo.Create(ctx, submission)
	if err != nil {
		return false, fmt.Errorf("failed to create submission: %w", err)
	}
	if n == 0 {
		s.logger.ErrorContext(ctx, "Error in creating submission: no rows inserted", "user_id", userID)
		return false, nil
	}
	s.logger.InfoContext(ctx, "Submission created successfully", "user_id", userID, "name", draft.Name)
	return true, nil
}
