package export

import (
	"context"

	"github.com/ahl-official/ahl-utm-tracking/internal/domain"
)

// Envelope wraps a changed click record with its sync acknowledgment
type Envelope struct {
	Record *domain.ClickRecord
	ack    func(context.Context) error
}

// NewEnvelope creates a new change envelope
func NewEnvelope(record *domain.ClickRecord, ack func(context.Context) error) *Envelope {
	return &Envelope{
		Record: record,
		ack:    ack,
	}
}

// Ack marks the record synced after its row landed in the sink
func (e *Envelope) Ack(ctx context.Context) error {
	if e.ack != nil {
		return e.ack(ctx)
	}
	return nil
}
