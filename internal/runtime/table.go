package runtime

import (
	"context"

	"github.com/aretw0/phonebook/pkg/domain"
)

// ActionFunc runs as part of a transition. It receives the current entries and
// the event payload (nil for READ, RESET and FINISH) and returns the new entries.
// Actions never fail; I/O problems are handled inside the action.
type ActionFunc func(ctx context.Context, m *Machine, entries []domain.Entry, payload *domain.Entry) []domain.Entry

type routeKey struct {
	from  domain.State
	event domain.EventType
}

type route struct {
	transition domain.Transition
	action     ActionFunc
}

// transitions is the full dispatch table. Anything not listed is rejected.
var transitions = []domain.Transition{
	{From: domain.StateIdle, Event: domain.EventRead, Action: domain.ActionLoadEntries, To: domain.StateReady},
	{From: domain.StateReady, Event: domain.EventCreate, Action: domain.ActionCreateEntry, To: domain.StateRunning},
	{From: domain.StateReady, Event: domain.EventUpdate, Action: domain.ActionUpdateEntry, To: domain.StateRunning},
	{From: domain.StateReady, Event: domain.EventDelete, Action: domain.ActionDeleteEntry, To: domain.StateRunning},
	{From: domain.StateReady, Event: domain.EventReset, Action: domain.ActionResetEntries, To: domain.StateRunning},
	{From: domain.StateRunning, Event: domain.EventFinish, Action: domain.ActionPersistEntries, To: domain.StateIdle},
}

var actions = map[string]ActionFunc{
	domain.ActionLoadEntries:    loadEntries,
	domain.ActionCreateEntry:    createEntry,
	domain.ActionUpdateEntry:    updateEntry,
	domain.ActionDeleteEntry:    deleteEntry,
	domain.ActionResetEntries:   resetEntries,
	domain.ActionPersistEntries: persistEntries,
}

func buildRoutes() map[routeKey]route {
	routes := make(map[routeKey]route, len(transitions))
	for _, t := range transitions {
		action, ok := actions[t.Action]
		if !ok {
			panic("runtime: no action registered for " + t.Action)
		}
		routes[routeKey{from: t.From, event: t.Event}] = route{transition: t, action: action}
	}
	return routes
}

// Transitions returns a copy of the dispatch table, in declaration order.
func Transitions() []domain.Transition {
	out := make([]domain.Transition, len(transitions))
	copy(out, transitions)
	return out
}
