package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/phonebook/internal/logging"
	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/aretw0/phonebook/pkg/ports"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Machine is the phone book state machine.
// It is synchronous and not safe for concurrent use; callers dispatch one
// event at a time.
type Machine struct {
	store    ports.KVStore
	key      string
	state    domain.State
	entries  []domain.Entry
	routes   map[routeKey]route
	collator *collate.Collator
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	now      func() time.Time
}

// MachineOption configures the Machine.
type MachineOption func(*Machine)

// WithStorageKey overrides the key entries are persisted under.
func WithStorageKey(key string) MachineOption {
	return func(m *Machine) {
		if key != "" {
			m.key = key
		}
	}
}

// WithLocale sets the collation used to sort entries by last name.
func WithLocale(tag language.Tag) MachineOption {
	return func(m *Machine) {
		m.collator = collate.New(tag)
	}
}

// WithLogger sets the logger used for swallowed storage errors and transitions.
func WithLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) MachineOption {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithClock overrides the time source used for hook timestamps.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) {
		m.now = now
	}
}

// NewMachine creates a machine in the idle state holding the seed entries.
func NewMachine(store ports.KVStore, opts ...MachineOption) *Machine {
	m := &Machine{
		store:    store,
		key:      domain.DefaultStorageKey,
		state:    domain.InitialState,
		entries:  domain.Seed(),
		routes:   buildRoutes(),
		collator: collate.New(language.Und),
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dispatch processes a single event. It returns false if the event is not
// legal in the current state (or lacks a required entry), in which case
// neither state nor entries change.
func (m *Machine) Dispatch(ctx context.Context, ev domain.Event) bool {
	r, ok := m.routes[routeKey{from: m.state, event: ev.Type}]
	if !ok || (ev.Type.RequiresEntry() && ev.Entry == nil) {
		if m.hooks.OnRejected != nil {
			m.hooks.OnRejected(ctx, &domain.RejectedEvent{
				Timestamp: m.now(),
				State:     m.state,
				Event:     ev.Type,
			})
		}
		return false
	}

	from := m.state
	m.entries = r.action(ctx, m, m.entries, ev.Entry)
	m.state = r.transition.To

	m.logger.Debug("transition",
		"from", from,
		"event", ev.Type,
		"action", r.transition.Action,
		"to", m.state,
		"entries", len(m.entries),
	)

	if m.hooks.OnTransition != nil {
		m.hooks.OnTransition(ctx, &domain.TransitionEvent{
			Timestamp: m.now(),
			From:      from,
			To:        m.state,
			Event:     ev.Type,
			Action:    r.transition.Action,
			Entries:   len(m.entries),
		})
	}
	return true
}

// Can reports whether an event of type t would be accepted right now.
func (m *Machine) Can(t domain.EventType) bool {
	_, ok := m.routes[routeKey{from: m.state, event: t}]
	return ok
}

// State returns the current state.
func (m *Machine) State() domain.State {
	return m.state
}

// Entries returns a copy of the current entries.
func (m *Machine) Entries() []domain.Entry {
	return domain.CloneEntries(m.entries)
}

// Snapshot returns the current state and a copy of the entries.
func (m *Machine) Snapshot() domain.Snapshot {
	return domain.Snapshot{State: m.state, Entries: m.Entries()}
}

// StorageKey returns the key entries are persisted under.
func (m *Machine) StorageKey() string {
	return m.key
}

func (m *Machine) storageError(ctx context.Context, op domain.StorageOp, err error) {
	m.logger.Error("storage failure, continuing",
		"op", op,
		"key", m.key,
		"error", err,
	)
	if m.hooks.OnStorageError != nil {
		m.hooks.OnStorageError(ctx, &domain.StorageErrorEvent{
			Timestamp: m.now(),
			Op:        op,
			Key:       m.key,
			Err:       err,
		})
	}
}
