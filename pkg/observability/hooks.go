package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/phonebook/pkg/domain"
)

// LoggingHooks logs every transition and rejected event at debug level.
// Storage errors are already logged by the machine itself.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.DebugContext(ctx, "transition",
				"from", e.From,
				"event", e.Event,
				"action", e.Action,
				"to", e.To,
				"entries", e.Entries,
			)
		},
		OnRejected: func(ctx context.Context, e *domain.RejectedEvent) {
			logger.DebugContext(ctx, "event_rejected",
				"state", e.State,
				"event", e.Event,
			)
		},
	}
}

// Combine fans each callback out to every hook set that defines it, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks

	var onTransition []func(context.Context, *domain.TransitionEvent)
	var onRejected []func(context.Context, *domain.RejectedEvent)
	var onStorageError []func(context.Context, *domain.StorageErrorEvent)

	for _, s := range sets {
		if s.OnTransition != nil {
			onTransition = append(onTransition, s.OnTransition)
		}
		if s.OnRejected != nil {
			onRejected = append(onRejected, s.OnRejected)
		}
		if s.OnStorageError != nil {
			onStorageError = append(onStorageError, s.OnStorageError)
		}
	}

	if len(onTransition) > 0 {
		out.OnTransition = func(ctx context.Context, e *domain.TransitionEvent) {
			for _, fn := range onTransition {
				fn(ctx, e)
			}
		}
	}
	if len(onRejected) > 0 {
		out.OnRejected = func(ctx context.Context, e *domain.RejectedEvent) {
			for _, fn := range onRejected {
				fn(ctx, e)
			}
		}
	}
	if len(onStorageError) > 0 {
		out.OnStorageError = func(ctx context.Context, e *domain.StorageErrorEvent) {
			for _, fn := range onStorageError {
				fn(ctx, e)
			}
		}
	}
	return out
}
