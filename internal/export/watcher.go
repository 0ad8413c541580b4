package export

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ahl-official/ahl-utm-tracking/internal/repository"
)

// WatcherConfig configures the change-feed watcher
type WatcherConfig struct {
	ReconnectDelay time.Duration
}

// Watcher supervises a live change feed on the click store and turns each
// qualifying change into an envelope for the mirror writer. Feed errors are
// not fatal: the subscription is re-established after the reconnect delay,
// indefinitely, until the context is cancelled.
type Watcher struct {
	repository repository.ClickRepository
	config     WatcherConfig
	log        *zap.Logger
}

// NewWatcher creates a new change-feed watcher
func NewWatcher(repo repository.ClickRepository, config WatcherConfig, log *zap.Logger) *Watcher {
	return &Watcher{
		repository: repo,
		config:     config,
		log:        log,
	}
}

// Start consumes the change feed and sends envelopes to the output channel
func (w *Watcher) Start(ctx context.Context, out chan<- *Envelope) {
	defer close(out)

	for {
		if err := w.consume(ctx, out); err != nil {
			if ctx.Err() != nil {
				w.log.Info("Watcher shutting down")
				return
			}

			w.log.Error("Change feed error, reconnecting",
				zap.Error(err),
				zap.Duration("delay", w.config.ReconnectDelay))

			select {
			case <-ctx.Done():
				w.log.Info("Watcher shutting down")
				return
			case <-time.After(w.config.ReconnectDelay):
			}
		}
	}
}

// consume runs one subscription until it fails or the context ends
func (w *Watcher) consume(ctx context.Context, out chan<- *Envelope) error {
	stream, err := w.repository.Watch(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stream.Close(closeCtx); err != nil {
			w.log.Warn("Failed to close change stream", zap.Error(err))
		}
	}()

	w.log.Info("Change feed subscription established")

	for {
		record, err := stream.Next(ctx)
		if err != nil {
			return err
		}

		id := record.ID
		envelope := NewEnvelope(record, func(ackCtx context.Context) error {
			return w.repository.MarkSynced(ackCtx, id, time.Now())
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- envelope:
		}
	}
}
