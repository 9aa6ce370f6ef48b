package memory

import (
	"context"
	"sync"

	"github.com/aretw0/blinks/pkg/domain"
)

// DefaultCapacity is used when NewJournal receives a non-positive size.
const DefaultCapacity = 1000

// Journal implements ports.Journal as a bounded ring in memory.
// Safe for concurrent use.
type Journal struct {
	mu      sync.RWMutex
	entries []domain.InvocationEvent
	next    int
	full    bool
}

// NewJournal creates a journal retaining the last capacity entries.
func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Journal{
		entries: make([]domain.InvocationEvent, capacity),
	}
}

// Record stores the event, evicting the oldest one when full.
func (j *Journal) Record(ctx context.Context, event domain.InvocationEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries[j.next] = event
	j.next = (j.next + 1) % len(j.entries)
	if j.next == 0 {
		j.full = true
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]domain.InvocationEvent, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	size := j.next
	if j.full {
		size = len(j.entries)
	}
	if n <= 0 || n > size {
		n = size
	}

	out := make([]domain.InvocationEvent, 0, n)
	for i := 1; i <= n; i++ {
		idx := (j.next - i + len(j.entries)) % len(j.entries)
		out = append(out, j.entries[idx])
	}
	return out, nil
}

// Len returns the number of retained entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.full {
		return len(j.entries)
	}
	return j.next
}
