package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/blinks/pkg/domain"
	"github.com/aretw0/blinks/pkg/ports"
)

// LogHooks writes one line per invocation start and result.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInvoke: func(ctx context.Context, e *domain.InvocationEvent) {
			logger.DebugContext(ctx, "invoke",
				"id", e.ID,
				"action", e.Action,
				"account", e.Account,
			)
		},
		OnResult: func(ctx context.Context, e *domain.InvocationEvent) {
			attrs := []any{
				"id", e.ID,
				"action", e.Action,
				"outcome", e.Outcome,
				"duration", e.Duration,
			}
			if e.Error != "" {
				attrs = append(attrs, "error", e.Error)
			}
			logger.InfoContext(ctx, "result", attrs...)
		},
	}
}

// JournalHooks records finished invocations in j.
// Journal failures are logged and never affect the invocation.
func JournalHooks(j ports.Journal, logger *slog.Logger) domain.LifecycleHooks {
	if logger == nil {
		logger = slog.Default()
	}
	return domain.LifecycleHooks{
		OnResult: func(ctx context.Context, e *domain.InvocationEvent) {
			if err := j.Record(context.WithoutCancel(ctx), *e); err != nil {
				logger.WarnContext(ctx, "journal record failed", "id", e.ID, "error", err)
			}
		},
	}
}
