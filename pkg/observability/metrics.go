package observability

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/blinks/pkg/domain"
)

// Metrics holds the invocation collectors.
type Metrics struct {
	Invocations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
// Collectors already registered on reg are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blinks_invocations_total",
				Help: "Total number of action invocations by outcome",
			},
			[]string{"action", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blinks_invocation_duration_seconds",
				Help:    "Duration of action invocations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
	}

	var err error
	if m.Invocations, err = register(reg, m.Invocations); err != nil {
		return nil, err
	}
	if m.Duration, err = register(reg, m.Duration); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Hooks records every finished invocation.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnResult: func(_ context.Context, e *domain.InvocationEvent) {
			m.Invocations.WithLabelValues(e.Action, e.Outcome).Inc()
			m.Duration.WithLabelValues(e.Action).Observe(e.Duration.Seconds())
		},
	}
}
