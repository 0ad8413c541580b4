package export

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ahl-official/ahl-utm-tracking/internal/repository"
	"github.com/ahl-official/ahl-utm-tracking/internal/sink"
)

// ExporterConfig configures the batch exporter
type ExporterConfig struct {
	BatchSize     int
	RetryAttempts int
	RetryDelay    time.Duration
}

// Summary reports the outcome of one batch export run
type Summary struct {
	Selected int
	Appended int
	Marked   int
}

// Exporter mirrors the engaged-but-unsynced backlog to the tabular sink.
// Records are marked synced only after the sink confirms the append, so a
// failed run is retried in full; duplicate sheet rows are the accepted
// failure mode.
type Exporter struct {
	repository repository.ClickRepository
	sink       sink.TabularSink
	config     ExporterConfig
	log        *zap.Logger
}

// NewExporter creates a new batch exporter
func NewExporter(repo repository.ClickRepository, tabular sink.TabularSink, config ExporterConfig, log *zap.Logger) *Exporter {
	return &Exporter{
		repository: repo,
		sink:       tabular,
		config:     config,
		log:        log,
	}
}

// Run executes one batch export with the configured retry budget. The last
// error is returned once the budget is exhausted, never retried silently.
func (e *Exporter) Run(ctx context.Context) (*Summary, error) {
	var lastErr error

	for attempt := 1; attempt <= e.config.RetryAttempts; attempt++ {
		summary, err := e.runOnce(ctx)
		if err == nil {
			return summary, nil
		}

		lastErr = err
		e.log.Error("Export attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", e.config.RetryAttempts))

		if attempt < e.config.RetryAttempts {
			delay := time.Duration(attempt) * e.config.RetryDelay
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return nil, fmt.Errorf("export failed after %d attempts: %w", e.config.RetryAttempts, lastErr)
}

// runOnce performs a single select, append, mark pass
func (e *Exporter) runOnce(ctx context.Context) (*Summary, error) {
	clicks, err := e.repository.FindPendingExport(ctx, e.config.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending clicks: %w", err)
	}

	summary := &Summary{Selected: len(clicks)}
	if len(clicks) == 0 {
		e.log.Info("No clicks pending export")
		return summary, nil
	}

	if err := e.sink.EnsureSchema(ctx, Header()); err != nil {
		return nil, fmt.Errorf("failed to ensure sink schema: %w", err)
	}

	rows := make([][]interface{}, len(clicks))
	for i, click := range clicks {
		rows[i] = Row(click)
	}

	// One append call for the whole batch; nothing is marked until it lands
	if err := e.sink.AppendRows(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to append %d rows: %w", len(rows), err)
	}
	summary.Appended = len(rows)

	now := time.Now()
	for _, click := range clicks {
		if err := e.repository.MarkSynced(ctx, click.ID, now); err != nil {
			// The record stays eligible and may duplicate a row next run
			e.log.Error("Failed to mark click synced",
				zap.Error(err),
				zap.String("session_id", click.ID))
			continue
		}
		summary.Marked++
	}

	e.log.Info("Export run complete",
		zap.Int("selected", summary.Selected),
		zap.Int("appended", summary.Appended),
		zap.Int("marked", summary.Marked))

	return summary, nil
}
