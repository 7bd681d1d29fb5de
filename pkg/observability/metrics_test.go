package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/phonebook"
	"github.com/aretw0/phonebook/pkg/adapters/memory"
	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/aretw0/phonebook/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsMachineActivity(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	store := memory.NewStore()
	require.NoError(t, store.Set(ctx, domain.DefaultStorageKey, "garbage"))

	book := phonebook.New(store, phonebook.WithLifecycleHooks(metrics.Hooks()))

	book.Dispatch(ctx, domain.Finish()) // rejected in idle
	book.Dispatch(ctx, domain.Read())   // decode error, falls back to seed
	book.Dispatch(ctx, domain.Create(domain.Entry{ID: 6, LastName: "Lovelace"}))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Rejected.WithLabelValues("idle", "FINISH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("idle", "READ", "ready")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("ready", "CREATE", "running")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StorageErrors.WithLabelValues("decode")))
	assert.Equal(t, 6.0, testutil.ToFloat64(metrics.Entries))
}

func TestMetrics_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg)
	assert.Panics(t, func() { observability.NewMetrics(reg) })
}

func TestCombine(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnTransition: func(context.Context, *domain.TransitionEvent) { order = append(order, "a") },
	}
	b := domain.LifecycleHooks{
		OnTransition:   func(context.Context, *domain.TransitionEvent) { order = append(order, "b") },
		OnStorageError: func(context.Context, *domain.StorageErrorEvent) { order = append(order, "b-err") },
	}

	hooks := observability.Combine(a, b)
	require.NotNil(t, hooks.OnTransition)
	assert.Nil(t, hooks.OnRejected)

	hooks.OnTransition(context.Background(), &domain.TransitionEvent{})
	hooks.OnStorageError(context.Background(), &domain.StorageErrorEvent{Err: errors.New("x")})

	assert.Equal(t, []string{"a", "b", "b-err"}, order)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	book := phonebook.New(memory.NewStore(), phonebook.WithLifecycleHooks(observability.LoggingHooks(logger)))
	book.Dispatch(context.Background(), domain.Finish())
	book.Dispatch(context.Background(), domain.Read())

	out := buf.String()
	assert.Contains(t, out, "msg=event_rejected state=idle event=FINISH")
	assert.Contains(t, out, "msg=transition from=idle event=READ action=load-entries to=ready entries=5")
}
