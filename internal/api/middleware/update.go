package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"practice_tracker/internal/api/handler"
	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/model"
	"practice_tracker/internal/platform/metrics"
)

// Recoverer turns a handler panic into an error so one bad update cannot stop a worker.
func Recoverer(next handler.Func) handler.Func {
	return func(ctx context.Context, upd model.Update) (replies []model.Reply, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic handling update: %v\n%s", rec, debug.Stack())
			}
		}()
		return next(ctx, upd)
	}
}

// Instrument logs and times each update under the given route label.
func Instrument(route string, logger *slog.Logger) func(handler.Func) handler.Func {
	return func(next handler.Func) handler.Func {
		return func(ctx context.Context, upd model.Update) ([]model.Reply, error) {
			ctx = common.WithTraceID(ctx, upd.TraceID)
			start := time.Now()

			replies, err := next(ctx, upd)

			elapsed := time.Since(start)
			metrics.HandlerDuration.WithLabelValues(route).Observe(elapsed.Seconds())
			attrs := []any{
				"route", route,
				"chat_id", upd.Chat.ID,
				"chat_type", upd.Chat.Type,
				"user_id", upd.From.ID,
				"duration", elapsed,
			}
			if err != nil {
				metrics.HandlerErrors.WithLabelValues(route).Inc()
				logger.ErrorContext(ctx, "Update handler failed", append(attrs, "err", err)...)
			} else {
				logger.DebugContext(ctx, "Update handled", attrs...)
			}
			return replies, err
		}
	}
}
