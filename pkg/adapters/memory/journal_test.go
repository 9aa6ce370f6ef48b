package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/blinks/pkg/adapters/memory"
	"github.com/aretw0/blinks/pkg/domain"
	"github.com/aretw0/blinks/pkg/ports"
)

func TestMemoryJournal_Contract(t *testing.T) {
	ports.RunJournalContract(t, memory.NewJournal(10))
}

func TestMemoryJournal_Eviction(t *testing.T) {
	ctx := context.Background()
	j := memory.NewJournal(3)

	for i := 0; i < 5; i++ {
		require.NoError(t, j.Record(ctx, domain.InvocationEvent{ID: fmt.Sprint(i)}))
	}

	assert.Equal(t, 3, j.Len())
	entries, err := j.Recent(ctx, 0)
	require.NoError(t, err)

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"4", "3", "2"}, ids)
}

func TestMemoryJournal_DefaultCapacity(t *testing.T) {
	j := memory.NewJournal(0)
	for i := 0; i < memory.DefaultCapacity+1; i++ {
		_ = j.Record(context.Background(), domain.InvocationEvent{})
	}
	assert.Equal(t, memory.DefaultCapacity, j.Len())
}

func TestMemoryJournal_Concurrent(t *testing.T) {
	j := memory.NewJournal(50)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = j.Record(context.Background(), domain.InvocationEvent{ID: fmt.Sprint(i)})
			_, _ = j.Recent(context.Background(), 5)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, j.Len())
}
