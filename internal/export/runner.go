package export

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ahl-official/ahl-utm-tracking/internal/config"
	"github.com/ahl-official/ahl-utm-tracking/internal/repository"
	"github.com/ahl-official/ahl-utm-tracking/internal/sink"
)

// Worker runs both export modes side by side: a periodic batch sweep that
// drains the engaged-but-unsynced backlog, and a continuous change-feed
// mirror for records engaging while the worker is up. Both paths use the
// same append-then-mark ordering, so overlap is a harmless no-op.
type Worker struct {
	exporter      *Exporter
	watcher       *Watcher
	writer        *MirrorWriter
	sweepInterval time.Duration
	bufferSize    int
	log           *zap.Logger
}

// NewWorker creates an export worker from the export configuration
func NewWorker(cfg *config.Export, repo repository.ClickRepository, tabular sink.TabularSink, log *zap.Logger) *Worker {
	exporter := NewExporter(repo, tabular, ExporterConfig{
		BatchSize:     cfg.BatchSize,
		RetryAttempts: cfg.RetryAttempts,
		RetryDelay:    time.Duration(cfg.RetryDelaySec) * time.Second,
	}, log)

	watcher := NewWatcher(repo, WatcherConfig{
		ReconnectDelay: time.Duration(cfg.ReconnectDelaySec) * time.Second,
	}, log)

	writer := NewMirrorWriter(tabular, log)

	return &Worker{
		exporter:      exporter,
		watcher:       watcher,
		writer:        writer,
		sweepInterval: time.Duration(cfg.SweepIntervalSec) * time.Second,
		bufferSize:    100,
		log:           log,
	}
}

// Start runs the sweep loop and the mirror pipeline until the context is
// cancelled
func (w *Worker) Start(ctx context.Context) error {
	envelopeChan := make(chan *Envelope, w.bufferSize)

	var wg sync.WaitGroup
	wg.Add(3)

	// Stage 1: watch the click store change feed
	go func() {
		defer wg.Done()
		w.watcher.Start(ctx, envelopeChan)
	}()

	// Stage 2: mirror each change to the sink
	go func() {
		defer wg.Done()
		w.writer.Start(ctx, envelopeChan)
	}()

	// Stage 3: periodic batch sweep catching anything the mirror missed
	go func() {
		defer wg.Done()
		w.sweep(ctx)
	}()

	wg.Wait()
	return nil
}

// sweep drains the backlog once at startup and then on every tick
func (w *Worker) sweep(ctx context.Context) {
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	w.runSweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Sweep loop shutting down")
			return
		case <-ticker.C:
			w.runSweep(ctx)
		}
	}
}

func (w *Worker) runSweep(ctx context.Context) {
	summary, err := w.exporter.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.log.Error("Batch sweep failed", zap.Error(err))
		return
	}

	if summary.Selected > 0 {
		w.log.Info("Batch sweep complete",
			zap.Int("selected", summary.Selected),
			zap.Int("marked", summary.Marked))
	}
}
