package handler

import (
	"context"

	"practice_tracker/internal/app/service"
	"practice_tracker/internal/domain/model"
)

type StatusHandler struct {
	statusService *service.StatusService
}

func NewStatusHandler(ss *service.StatusService) *StatusHandler {
	return &StatusHandler{statusService: ss}
}

// Status shows the sender's history in private, or today's activity of the
// group's registered members in a group.
func (h *StatusHandler) Status(ctx context.Context, upd model.Update) ([]model.Reply, error) {
	var (
		text string
		err  error
	)
	if upd.Chat.IsPrivate() {
		text, err = h.statusService.PrivateReport(ctx, upd.From.ID, upd.From.DisplayName())
	} else {
		text, err = h.statusService.GroupReport(ctx, upd.Chat.ID)
	}
	if err != nil {
		return nil, err
	}
	return replyTo(upd, text), nil
}
