package export

import (
	"context"

	"go.uber.org/zap"

	"github.com/ahl-official/ahl-utm-tracking/internal/sink"
)

// MirrorWriter consumes change envelopes and mirrors each record to the
// sink one row at a time, marking it synced only after the append lands.
// A failed append is logged and not acked; the periodic batch sweep picks
// the record up again.
type MirrorWriter struct {
	sink sink.TabularSink
	log  *zap.Logger
}

// NewMirrorWriter creates a new mirror writer
func NewMirrorWriter(tabular sink.TabularSink, log *zap.Logger) *MirrorWriter {
	return &MirrorWriter{
		sink: tabular,
		log:  log,
	}
}

// Start begins mirroring envelopes until the input channel closes
func (w *MirrorWriter) Start(ctx context.Context, in <-chan *Envelope) {
	for {
		select {
		case <-ctx.Done():
			w.log.Info("Mirror writer shutting down")
			return

		case envelope, ok := <-in:
			if !ok {
				w.log.Info("Mirror writer input channel closed")
				return
			}
			w.mirror(ctx, envelope)
		}
	}
}

// mirror appends one row and acks on success
func (w *MirrorWriter) mirror(ctx context.Context, envelope *Envelope) {
	if err := w.sink.AppendRows(ctx, [][]interface{}{Row(envelope.Record)}); err != nil {
		w.log.Error("Failed to mirror click to sink",
			zap.Error(err),
			zap.String("session_id", envelope.Record.ID))
		return
	}

	if err := envelope.Ack(ctx); err != nil {
		// Already appended; the next sweep may duplicate this row
		w.log.Error("Failed to mark mirrored click synced",
			zap.Error(err),
			zap.String("session_id", envelope.Record.ID))
		return
	}

	w.log.Info("Click mirrored to sink",
		zap.String("session_id", envelope.Record.ID),
		zap.String("attribution", envelope.Record.AttributionSource))
}
