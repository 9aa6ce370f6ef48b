package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/blinks/pkg/domain"
)

// DefaultKey is the list invocation entries are pushed to.
const DefaultKey = "blinks:journal"

// Journal implements ports.Journal using a capped Redis list.
type Journal struct {
	client     *backend.Client
	key        string
	ttl        time.Duration
	maxEntries int64
}

type Option func(*Journal)

// WithTTL sets the expiration of the journal list, refreshed on every write.
func WithTTL(ttl time.Duration) Option {
	return func(j *Journal) {
		j.ttl = ttl
	}
}

// WithKey sets the list key.
func WithKey(key string) Option {
	return func(j *Journal) {
		j.key = key
	}
}

// WithMaxEntries caps the list length.
func WithMaxEntries(n int) Option {
	return func(j *Journal) {
		if n > 0 {
			j.maxEntries = int64(n)
		}
	}
}

// New creates a new Redis journal with options.
func New(address, password string, db int, opts ...Option) *Journal {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis journal from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Journal {
	j := &Journal{
		client:     client,
		key:        DefaultKey,
		maxEntries: 1000,
	}

	for _, opt := range opts {
		opt(j)
	}

	return j
}

// Record pushes the event as JSON, trims the list and refreshes its TTL.
func (j *Journal) Record(ctx context.Context, event domain.InvocationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	pipe := j.client.TxPipeline()
	pipe.LPush(ctx, j.key, data)
	pipe.LTrim(ctx, j.key, 0, j.maxEntries-1)
	if j.ttl > 0 {
		pipe.Expire(ctx, j.key, j.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record to redis: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]domain.InvocationEvent, error) {
	stop := int64(n) - 1
	if n <= 0 {
		stop = -1
	}

	vals, err := j.client.LRange(ctx, j.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	out := make([]domain.InvocationEvent, 0, len(vals))
	for _, v := range vals {
		var ev domain.InvocationEvent
		if err := json.Unmarshal([]byte(v), &ev); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
		}
		out = append(out, ev)
	}
	return out, nil
}

// Ping checks connectivity.
func (j *Journal) Ping(ctx context.Context) error {
	return j.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (j *Journal) Close() error {
	return j.client.Close()
}
