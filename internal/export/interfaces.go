package export

import "context"

// Runner defines the interface for triggering one batch export run
type Runner interface {
	Run(ctx context.Context) (*Summary, error)
}
