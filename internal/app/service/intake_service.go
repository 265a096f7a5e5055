package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/model"
	"practice_tracker/internal/domain/repository"
	"practice_tracker/internal/platform/metrics"
)

const (
	ActionSkip   = "form:skip"
	ActionSubmit = "form:submit"
	ActionCancel = "form:cancel"

	FormTitle = "Leetcode Submission"

	MsgSubmissionSuccessful   = "Submission Successful"
	MsgSubmissionUnsuccessful = "Submission Unsuccessful"
	MsgSubmissionCancelled    = "Submission cancelled"
	msgFieldRequired          = "This field is required."
)

var (
	cancelButton = model.Button{Label: "Cancel", Action: ActionCancel}
	skipButton   = model.Button{Label: "Skip", Action: ActionSkip}
	submitButton = model.Button{Label: "Submit", Action: ActionSubmit}
)

// Prompt is what the form shows next.
type Prompt struct {
	Text    string
	Buttons []model.Button
}

// IntakeService walks a user through the submission form one field at a time.
type IntakeService struct {
	sessions    repository.SessionRepository
	submissions *SubmissionService
	logger      *slog.Logger
}

func NewIntakeService(sessions repository.SessionRepository, submissions *SubmissionService, logger *slog.Logger) *IntakeService {
	return &IntakeService{sessions: sessions, submissions: submissions, logger: logger}
}

// Begin starts a fresh form, discarding any unfinished one for the same key.
func (s *IntakeService) Begin(ctx context.Context, key model.SessionKey) (Prompt, error) {
	draft := &model.SubmissionDraft{Step: model.StepName}
	if err := s.sessions.Save(ctx, key, draft); err != nil {
		return Prompt{}, fmt.Errorf("failed to start form: %w", err)
	}
	s.logger.DebugContext(ctx, "Submission form started", "session", key.String())

	p := promptFor(draft)
	p.Text = FormTitle + "\n\n" + p.Text
	return p, nil
}

// Answer records text for the current step. It returns common.ErrNoActiveForm
// when key has no form in progress.
func (s *IntakeService) Answer(ctx context.Context, key model.SessionKey, text string) (Prompt, error) {
	draft, err := s.load(ctx, key)
	if err != nil {
		return Prompt{}, err
	}

	field, ok := draft.Field()
	if !ok {
		// Already at the summary; show it again.
		return promptFor(draft), nil
	}

	// Answers are stored exactly as typed.
	if strings.TrimSpace(text) == "" && field.Required {
		p := promptFor(draft)
		p.Text = msgFieldRequired + "\n\n" + p.Text
		return p, nil
	}

	draft.Set(field.Step, text)
	draft.Step++
	if err := s.sessions.Save(ctx, key, draft); err != nil {
		return Prompt{}, fmt.Errorf("failed to save form: %w", err)
	}
	return promptFor(draft), nil
}

// Act applies an inline button press.
func (s *IntakeService) Act(ctx context.Context, key model.SessionKey, action string) (Prompt, error) {
	switch action {
	case ActionSkip:
		return s.skip(ctx, key)
	case ActionSubmit:
		return s.submit(ctx, key)
	case ActionCancel:
		return s.cancel(ctx, key)
	default:
		return Prompt{}, fmt.Errorf("unknown action %q: %w", action, common.ErrInvalidAction)
	}
}

func (s *IntakeService) skip(ctx context.Context, key model.SessionKey) (Prompt, error) {
	draft, err := s.load(ctx, key)
	if err != nil {
		return Prompt{}, err
	}
	field, ok := draft.Field()
	if !ok || field.Required {
		return Prompt{}, fmt.Errorf("skip at step %s: %w", draft.Step, common.ErrInvalidAction)
	}

	draft.Set(field.Step, "")
	draft.Step++
	if err := s.sessions.Save(ctx, key, draft); err != nil {
		return Prompt{}, fmt.Errorf("failed to save form: %w", err)
	}
	return promptFor(draft), nil
}

func (s *IntakeService) submit(ctx context.Context, key model.SessionKey) (Prompt, error) {
	draft, err := s.load(ctx, key)
	if err != nil {
		return Prompt{}, err
	}
	if draft.Step != model.StepConfirm {
		return Prompt{}, fmt.Errorf("submit at step %s: %w", draft.Step, common.ErrInvalidAction)
	}

	// On a store error the form stays open so Submit can be pressed again.
	stored, err := s.submissions.Create(ctx, key.UserID, draft)
	if err != nil && !errors.Is(err, common.ErrValidation) {
		return Prompt{}, err
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Rejected submission form", "user_id", key.UserID, "err", err)
	}
	if err := s.sessions.Delete(ctx, key); err != nil {
		return Prompt{}, fmt.Errorf("failed to close form: %w", err)
	}

	if !stored {
		metrics.SubmissionsTotal.WithLabelValues("not_stored").Inc()
		return Prompt{Text: MsgSubmissionUnsuccessful}, nil
	}
	metrics.SubmissionsTotal.WithLabelValues("stored").Inc()
	return Prompt{Text: MsgSubmissionSuccessful}, nil
}

func (s *IntakeService) cancel(ctx context.Context, key model.SessionKey) (Prompt, error) {
	if _, err := s.load(ctx, key); err != nil {
		return Prompt{}, err
	}
	if err := s.sessions.Delete(ctx, key); err != nil {
		return Prompt{}, fmt.Errorf("failed to close form: %w", err)
	}
	metrics.SubmissionsTotal.WithLabelValues("cancelled").Inc()
	return Prompt{Text: MsgSubmissionCancelled}, nil
}

func (s *IntakeService) load(ctx context.Context, key model.SessionKey) (*model.SubmissionDraft, error) {
	draft, err := s.sessions.Get(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNoActiveForm
		}
		return nil, fmt.Errorf("failed to load form: %w", err)
	}
	return draft, nil
}

func promptFor(draft *model.SubmissionDraft) Prompt {
	field, ok := draft.Field()
	if !ok {
		return Prompt{
			Text:    summary(draft),
			Buttons: []model.Button{submitButton, cancelButton},
		}
	}
	if field.Required {
		return Prompt{Text: field.Prompt, Buttons: []model.Button{cancelButton}}
	}
	return Prompt{Text: field.Prompt, Buttons: []model.Button{skipButton, cancelButton}}
}

func summary(draft *model.SubmissionDraft) string {
	var b strings.Builder
	b.WriteString(FormTitle + "\n\n")
	values := []string{draft.Name, draft.SolveMethod, draft.TimeComplexity, draft.Difficulty}
	for i, f := range model.SubmissionFields {
		fmt.Fprintf(&b, "%s : %s\n", f.Label, values[i])
	}
	return b.String()
}
