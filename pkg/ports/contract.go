package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/blinks/pkg/domain"
)

// RunJournalContract runs a suite of tests to verify that a Journal implementation
// adheres to the defined interface contract. The journal must start empty and
// retain at least 5 entries.
func RunJournalContract(t *testing.T, journal Journal) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		entries, err := journal.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	var ids []string
	t.Run("Record and Recent", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			ev := domain.InvocationEvent{
				ID:        uuid.NewString(),
				Type:      domain.EventResult,
				Timestamp: time.Now().UTC().Truncate(time.Millisecond),
				Action:    fmt.Sprintf("action_%d", i),
				Protocol:  "demo",
				Account:   "acct",
				Outcome:   "success",
				Duration:  time.Duration(i+1) * time.Millisecond,
			}
			require.NoError(t, journal.Record(ctx, ev))
			ids = append(ids, ev.ID)
		}

		entries, err := journal.Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		// Newest first
		assert.Equal(t, ids[2], entries[0].ID)
		assert.Equal(t, ids[0], entries[2].ID)
		assert.Equal(t, "action_2", entries[0].Action)
		assert.Equal(t, 3*time.Millisecond, entries[0].Duration)
	})

	t.Run("Recent Limit", func(t *testing.T) {
		entries, err := journal.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, ids[2], entries[0].ID)
		assert.Equal(t, ids[1], entries[1].ID)
	})
}
