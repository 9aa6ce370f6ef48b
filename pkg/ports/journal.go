package ports

import (
	"context"

	"github.com/aretw0/blinks/pkg/domain"
)

// Journal stores the outcome of past invocations.
// Implementations must be safe for concurrent use.
type Journal interface {
	// Record appends a finished invocation.
	Record(ctx context.Context, event domain.InvocationEvent) error

	// Recent returns up to n entries, newest first. n <= 0 returns every retained entry.
	Recent(ctx context.Context, n int) ([]domain.InvocationEvent, error)
}
