package handler

import (
	"context"
	"errors"

	"practice_tracker/internal/app/service"
	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/model"
)

const (
	MsgSubmissionInGroup = "To make a submission, dm me ;)"
	MsgFormExpired       = "This form is no longer active. Send /submission to start again."
)

type SubmissionHandler struct {
	intake *service.IntakeService
}

func NewSubmissionHandler(is *service.IntakeService) *SubmissionHandler {
	return &SubmissionHandler{intake: is}
}

func sessionKey(upd model.Update) model.SessionKey {
	return model.SessionKey{ChatID: upd.Chat.ID, UserID: upd.From.ID}
}

// Begin opens the submission form in a private chat.
func (h *SubmissionHandler) Begin(ctx context.Context, upd model.Update) ([]model.Reply, error) {
	if !upd.Chat.IsPrivate() {
		return replyTo(upd, MsgSubmissionInGroup), nil
	}
	p, err := h.intake.Begin(ctx, sessionKey(upd))
	if err != nil {
		return nil, err
	}
	return send(upd, p), nil
}

// Answer feeds free text into an open form. Text outside a form is ignored.
func (h *SubmissionHandler) Answer(ctx context.Context, upd model.Update) ([]model.Reply, error) {
	if !upd.Chat.IsPrivate() {
		return nil, nil
	}
	p, err := h.intake.Answer(ctx, sessionKey(upd), upd.Text)
	if err != nil {
		if errors.Is(err, common.ErrNoActiveForm) {
			return nil, nil
		}
		return nil, err
	}
	return send(upd, p), nil
}

// Act handles the form's inline buttons.
func (h *SubmissionHandler) Act(ctx context.Context, upd model.Update) ([]model.Reply, error) {
	p, err := h.intake.Act(ctx, sessionKey(upd), upd.Action)
	switch {
	case errors.Is(err, common.ErrNoActiveForm):
		return []model.Reply{{ChatID: upd.Chat.ID, Text: MsgFormExpired}}, nil
	case errors.Is(err, common.ErrInvalidAction):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return send(upd, p), nil
}
