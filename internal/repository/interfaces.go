package repository

import (
	"context"
	"time"

	"github.com/ahl-official/ahl-utm-tracking/internal/domain"
)

// EngagementUpdate carries the fields applied to a click record when an
// inbound message is attributed to it. Identifier fields are written only
// when non-empty so a retry never blanks out known values. The snapshot is
// used only when the update has to create the record.
type EngagementUpdate struct {
	PhoneNumber       string
	EngagedAt         time.Time
	AttributionSource string
	ContactID         string
	ConversationID    string
	ContactName       string
	LastMessage       string
	Snapshot          domain.UTMSnapshot
}

// ClickStream is a live feed of click records matching the export
// predicate. Reconnection on error is the caller's responsibility.
type ClickStream interface {
	// Next blocks until the next qualifying change or a feed error
	Next(ctx context.Context) (*domain.ClickRecord, error)

	// Close releases the underlying subscription
	Close(ctx context.Context) error
}

// ClickRepository defines the interface for click storage operations
type ClickRepository interface {
	// CreateClick inserts a record unless the id already exists.
	// Returns true when a new record was created.
	CreateClick(ctx context.Context, click *domain.ClickRecord) (bool, error)

	// FindRecentUnengaged returns the newest unengaged record created at or
	// after the given instant, or nil when none qualifies
	FindRecentUnengaged(ctx context.Context, since time.Time) (*domain.ClickRecord, error)

	// FindUnengagedByPhone returns the newest unengaged non-direct record
	// with the given normalized phone number, or nil
	FindUnengagedByPhone(ctx context.Context, phone string) (*domain.ClickRecord, error)

	// FindDirectConversation returns the direct-message record bound to the
	// given conversation id, or nil
	FindDirectConversation(ctx context.Context, conversationID string) (*domain.ClickRecord, error)

	// SetConversationIdentifiers attaches contact/conversation ids to a record
	SetConversationIdentifiers(ctx context.Context, id, contactID, conversationID string) error

	// TouchDirectMessage updates the last message and engagement time on an
	// existing direct-message record
	TouchDirectMessage(ctx context.Context, id, message string, at time.Time) error

	// UpsertEngagement applies an engagement outcome to the record with the
	// given id, creating it from the snapshot when absent. Idempotent.
	UpsertEngagement(ctx context.Context, id string, update EngagementUpdate) error

	// FindPendingExport returns engaged, unsynced, non-direct records,
	// newest first, capped at limit
	FindPendingExport(ctx context.Context, limit int) ([]*domain.ClickRecord, error)

	// MarkSynced flags a record as mirrored to the sink
	MarkSynced(ctx context.Context, id string, at time.Time) error

	// Watch opens a change feed filtered to the export predicate
	Watch(ctx context.Context) (ClickStream, error)

	// EnsureIndexes creates the collection indexes if they don't exist
	EnsureIndexes(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error
}

// Pinger is the narrow readiness surface handed to HTTP handlers
type Pinger interface {
	Ping(ctx context.Context) error
}
