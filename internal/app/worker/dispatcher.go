package worker

import (
	"context"
	"errors"
	"log/slog"

	"practice_tracker/internal/domain/model"

	"golang.org/x/sync/errgroup"
)

// ErrUpdatesClosed is returned by Run when the update source stops before ctx
// is cancelled.
var ErrUpdatesClosed = errors.New("update stream closed")

// Handler processes one update to completion.
type Handler interface {
	Handle(ctx context.Context, upd model.Update)
}

// Dispatcher fans updates out to a fixed pool of workers. Updates from the
// same chat always land on the same worker so they are handled in arrival
// order, while different chats proceed in parallel.
type Dispatcher struct {
	handler Handler
	workers int
	logger  *slog.Logger
}

func NewDispatcher(handler Handler, workers int, logger *slog.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{handler: handler, workers: workers, logger: logger}
}

// Run consumes updates until ctx is cancelled, then waits for in-flight
// updates to finish. If the channel closes first, Run drains the workers and
// returns ErrUpdatesClosed.
func (d *Dispatcher) Run(ctx context.Context, updates <-chan model.Update) error {
	d.logger.Info("Update dispatcher started", "workers", d.workers)

	shards := make([]chan model.Update, d.workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := range shards {
		shards[i] = make(chan model.Update, 16)
		shard := shards[i]
		g.Go(func() error {
			for upd := range shard {
				// Handlers get the parent ctx so an update already accepted is
				// finished rather than abandoned mid-write on shutdown.
				d.handler.Handle(context.WithoutCancel(ctx), upd)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer func() {
			for _, shard := range shards {
				close(shard)
			}
		}()
		for {
			select {
			case <-gctx.Done():
				return nil
			case upd, ok := <-updates:
				if !ok {
					if ctx.Err() != nil {
						return nil
					}
					return ErrUpdatesClosed
				}
				select {
				case shards[ShardFor(upd.Chat.ID, d.workers)] <- upd:
				case <-gctx.Done():
					return nil
				}
			}
		}
	})

	err := g.Wait()
	d.logger.Info("Update dispatcher stopped")
	return err
}

// ShardFor maps a chat to a worker index in [0, workers).
func ShardFor(chatID int64, workers int) int {
	s := chatID % int64(workers)
	if s < 0 {
		s = -s
	}
	return int(s)
}
