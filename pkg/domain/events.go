package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventInvoke EventType = "invoke"
	EventResult EventType = "result"
)

// InvocationEvent describes one invocation as seen by hooks.
// URL is empty when the request failed before the URL was built.
type InvocationEvent struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	Action    string        `json:"action"`
	Protocol  string        `json:"protocol,omitempty"`
	Account   string        `json:"account"`
	URL       string        `json:"url,omitempty"`
	Outcome   string        `json:"outcome,omitempty"`
	Kind      ErrorKind     `json:"kind,omitempty"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for invocation observability.
// Hooks run synchronously on the invoking goroutine and must not block.
type LifecycleHooks struct {
	OnInvoke func(context.Context, *InvocationEvent)
	OnResult func(context.Context, *InvocationEvent)
}

// Merge returns hooks that call h first, then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnInvoke: chain(h.OnInvoke, other.OnInvoke),
		OnResult: chain(h.OnResult, other.OnResult),
	}
}

func chain(a, b func(context.Context, *InvocationEvent)) func(context.Context, *InvocationEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *InvocationEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
