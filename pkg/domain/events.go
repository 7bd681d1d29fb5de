package domain

import (
	"context"
	"time"
)

// EventType identifies the kind of event dispatched into the machine.
type EventType string

const (
	EventRead   EventType = "READ"
	EventCreate EventType = "CREATE"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
	EventReset  EventType = "RESET"
	EventFinish EventType = "FINISH"
)

// EventTypes lists every event the machine understands, in table order.
var EventTypes = []EventType{EventRead, EventCreate, EventUpdate, EventDelete, EventReset, EventFinish}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RequiresEntry reports whether events of this type must carry an Entry.
func (t EventType) RequiresEntry() bool {
	return t == EventCreate || t == EventUpdate || t == EventDelete
}

// IsMutation reports whether events of this type change the entry list
// and therefore must be followed by a FINISH.
func (t EventType) IsMutation() bool {
	return t.RequiresEntry() || t == EventReset
}

// Event is a message dispatched into the machine.
type Event struct {
	Type  EventType `json:"type"`
	Entry *Entry    `json:"entry,omitempty"`
}

// Read builds a READ event.
func Read() Event { return Event{Type: EventRead} }

// Create builds a CREATE event for the given entry.
func Create(e Entry) Event { return Event{Type: EventCreate, Entry: &e} }

// Update builds an UPDATE event for the given entry.
func Update(e Entry) Event { return Event{Type: EventUpdate, Entry: &e} }

// Delete builds a DELETE event. Only the entry ID is significant.
func Delete(e Entry) Event { return Event{Type: EventDelete, Entry: &e} }

// Reset builds a RESET event.
func Reset() Event { return Event{Type: EventReset} }

// Finish builds a FINISH event.
func Finish() Event { return Event{Type: EventFinish} }

// TransitionEvent describes a transition that was taken.
type TransitionEvent struct {
	Timestamp time.Time `json:"timestamp"`
	From      State     `json:"from"`
	To        State     `json:"to"`
	Event     EventType `json:"event"`
	Action    string    `json:"action"`
	Entries   int       `json:"entries"`
}

// RejectedEvent describes an event that was ignored in the current state.
type RejectedEvent struct {
	Timestamp time.Time `json:"timestamp"`
	State     State     `json:"state"`
	Event     EventType `json:"event"`
}

// StorageOp names the storage operation that failed.
type StorageOp string

const (
	StorageOpRead   StorageOp = "read"
	StorageOpDecode StorageOp = "decode"
	StorageOpWrite  StorageOp = "write"
)

// StorageErrorEvent describes a storage failure swallowed by an action.
type StorageErrorEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Op        StorageOp `json:"op"`
	Key       string    `json:"key"`
	Err       error     `json:"-"`
}

// LifecycleHooks defines callbacks for machine observability.
// Any of them may be nil.
type LifecycleHooks struct {
	OnTransition   func(context.Context, *TransitionEvent)
	OnRejected     func(context.Context, *RejectedEvent)
	OnStorageError func(context.Context, *StorageErrorEvent)
}
