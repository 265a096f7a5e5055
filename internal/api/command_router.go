package api

import (
	"context"
	"log/slog"

	"practice_tracker/internal/api/handler"
	"practice_tracker/internal/api/middleware"
	"practice_tracker/internal/domain/model"
	"practice_tracker/internal/platform/metrics"
)

const (
	CommandStart      = "start"
	CommandSubmission = "submission"
	CommandStatus     = "status"

	routeText   = "form_text"
	routeAction = "form_action"
)

// Messenger is the outbound side of the chat transport.
type Messenger interface {
	Send(ctx context.Context, reply model.Reply) error
	AnswerAction(ctx context.Context, actionID string) error
}

// CommandRouter dispatches inbound updates to the bot's handlers.
type CommandRouter struct {
	messenger Messenger
	logger    *slog.Logger
	commands  map[string]handler.Func
	text      handler.Func
	action    handler.Func
}

func NewCommandRouter(
	messenger Messenger,
	startHandler *handler.StartHandler,
	submissionHandler *handler.SubmissionHandler,
	statusHandler *handler.StatusHandler,
	logger *slog.Logger,
) *CommandRouter {
	wrap := func(route string, h handler.Func) handler.Func {
		return middleware.Instrument(route, logger)(middleware.Recoverer(h))
	}
	return &CommandRouter{
		messenger: messenger,
		logger:    logger,
		commands: map[string]handler.Func{
			CommandStart:      wrap(CommandStart, startHandler.Start),
			CommandSubmission: wrap(CommandSubmission, submissionHandler.Begin),
			CommandStatus:     wrap(CommandStatus, statusHandler.Status),
		},
		text:   wrap(routeText, submissionHandler.Answer),
		action: wrap(routeAction, submissionHandler.Act),
	}
}

// Handle processes one update to completion, replies included.
func (r *CommandRouter) Handle(ctx context.Context, upd model.Update) {
	var h handler.Func
	switch upd.Kind {
	case model.UpdateCommand:
		var ok bool
		if h, ok = r.commands[upd.Command]; !ok {
			return
		}
		metrics.CommandsTotal.WithLabelValues(upd.Command, upd.Chat.Type).Inc()
	case model.UpdateText:
		h = r.text
	case model.UpdateAction:
		h = r.action
		if err := r.messenger.AnswerAction(ctx, upd.ActionID); err != nil {
			r.logger.WarnContext(ctx, "Failed to acknowledge button press", "trace_id", upd.TraceID, "err", err)
		}
	default:
		return
	}

	replies, err := h(ctx, upd)
	if err != nil {
		replies = []model.Reply{{ChatID: upd.Chat.ID, Text: handler.MsgSomethingFailed, ReplyTo: upd.MessageID}}
	}
	for _, reply := range replies {
		if err := r.messenger.Send(ctx, reply); err != nil {
			r.logger.ErrorContext(ctx, "Failed to send reply", "trace_id", upd.TraceID, "chat_id", reply.ChatID, "err", err)
		}
	}
}
