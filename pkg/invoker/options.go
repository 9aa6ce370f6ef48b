package invoker

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/aretw0/blinks/pkg/domain"
)

// Option defines a functional option for configuring the Invoker.
type Option func(*Invoker)

// WithHTTPClient replaces the HTTP client used for outbound calls.
// The per-call timeout is applied through the request context either way.
func WithHTTPClient(client *http.Client) Option {
	return func(i *Invoker) {
		i.client = client
	}
}

// WithHooks registers lifecycle hooks. Repeated calls chain the hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(i *Invoker) {
		i.hooks = i.hooks.Merge(hooks)
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Invoker) {
		i.logger = logger
	}
}

// WithTracerProvider configures the provider invocation spans are created from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(i *Invoker) {
		i.tracer = tp.Tracer(tracerName)
	}
}
