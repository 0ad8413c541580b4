package sink

import "context"

// TabularSink defines the interface for the external tabular store that
// receives exported click records. Appends are at-least-once: a retried
// batch may duplicate rows, the store-side synced flag is the source of
// truth.
type TabularSink interface {
	// EnsureSchema makes sure the target table exists and carries the
	// given header row, creating either when absent
	EnsureSchema(ctx context.Context, header []interface{}) error

	// AppendRows appends all rows in a single call
	AppendRows(ctx context.Context, rows [][]interface{}) error
}
