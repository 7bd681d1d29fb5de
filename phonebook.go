package phonebook

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/phonebook/internal/runtime"
	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/aretw0/phonebook/pkg/ports"
	"golang.org/x/text/language"
)

// Controller is the high-level entry point for the phone book.
// It wraps the runtime state machine and serializes dispatch so the
// one-event-at-a-time contract holds even when shared by an HTTP server.
type Controller struct {
	mu      sync.Mutex
	machine *runtime.Machine
}

type config struct {
	machineOpts []runtime.MachineOption
}

// Option defines a functional option for configuring the Controller.
type Option func(*config)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.machineOpts = append(c.machineOpts, runtime.WithLogger(logger))
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.machineOpts = append(c.machineOpts, runtime.WithLifecycleHooks(hooks))
	}
}

// WithStorageKey overrides the key entries are persisted under
// (default: domain.DefaultStorageKey).
func WithStorageKey(key string) Option {
	return func(c *config) {
		c.machineOpts = append(c.machineOpts, runtime.WithStorageKey(key))
	}
}

// WithLocale sets the collation used to sort entries on load (default: root collation).
func WithLocale(tag language.Tag) Option {
	return func(c *config) {
		c.machineOpts = append(c.machineOpts, runtime.WithLocale(tag))
	}
}

// New creates a Controller persisting to store. It starts idle with the seed entries.
func New(store ports.KVStore, opts ...Option) *Controller {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Controller{
		machine: runtime.NewMachine(store, cfg.machineOpts...),
	}
}

// Dispatch processes a single event. It reports whether the event was legal
// in the current state; illegal events change nothing.
func (c *Controller) Dispatch(ctx context.Context, ev domain.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Dispatch(ctx, ev)
}

// DispatchSnapshots is Dispatch that also returns the snapshots taken right
// before and after the event, under the same lock, so the difference between
// them is caused by ev alone.
func (c *Controller) DispatchSnapshots(ctx context.Context, ev domain.Event) (accepted bool, before, after domain.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before = c.machine.Snapshot()
	accepted = c.machine.Dispatch(ctx, ev)
	after = c.machine.Snapshot()
	return accepted, before, after
}

// Apply runs one full cycle for a mutation: READ if idle, the event itself,
// then FINISH. Non-mutation events are dispatched as-is.
// It reports whether ev itself was accepted.
func (c *Controller) Apply(ctx context.Context, ev domain.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !ev.Type.IsMutation() {
		return c.machine.Dispatch(ctx, ev)
	}

	if c.machine.State() == domain.StateIdle {
		c.machine.Dispatch(ctx, domain.Read())
	}
	accepted := c.machine.Dispatch(ctx, ev)
	if c.machine.State() == domain.StateRunning {
		c.machine.Dispatch(ctx, domain.Finish())
	}
	return accepted
}

// Load brings the controller to ready, reading from storage if it is idle.
// It finishes a pending mutation first if one is in flight.
func (c *Controller) Load(ctx context.Context) domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.machine.State() == domain.StateRunning {
		c.machine.Dispatch(ctx, domain.Finish())
	}
	if c.machine.State() == domain.StateIdle {
		c.machine.Dispatch(ctx, domain.Read())
	}
	return c.machine.Snapshot()
}

// State returns the current state name.
func (c *Controller) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.State()
}

// Entries returns a copy of the current entries.
func (c *Controller) Entries() []domain.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Entries()
}

// Snapshot returns the state and entries read atomically.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Snapshot()
}

// Transitions returns the dispatch table.
func (c *Controller) Transitions() []domain.Transition {
	return runtime.Transitions()
}
