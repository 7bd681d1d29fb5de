package observability

import (
	"context"

	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by the lifecycle hooks.
type Metrics struct {
	Transitions   *prometheus.CounterVec
	Rejected      *prometheus.CounterVec
	StorageErrors *prometheus.CounterVec
	Entries       prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the global handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phonebook_transitions_total",
				Help: "Total number of transitions taken",
			},
			[]string{"from", "event", "to"},
		),
		Rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phonebook_rejected_events_total",
				Help: "Events ignored because they are not legal in the current state",
			},
			[]string{"state", "event"},
		),
		StorageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phonebook_storage_errors_total",
				Help: "Storage failures swallowed by the controller",
			},
			[]string{"op"},
		),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "phonebook_entries",
			Help: "Number of entries held in memory after the last transition",
		}),
	}
	reg.MustRegister(m.Transitions, m.Rejected, m.StorageErrors, m.Entries)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(string(e.From), string(e.Event), string(e.To)).Inc()
			m.Entries.Set(float64(e.Entries))
		},
		OnRejected: func(_ context.Context, e *domain.RejectedEvent) {
			m.Rejected.WithLabelValues(string(e.State), string(e.Event)).Inc()
		},
		OnStorageError: func(_ context.Context, e *domain.StorageErrorEvent) {
			m.StorageErrors.WithLabelValues(string(e.Op)).Inc()
		},
	}
}
