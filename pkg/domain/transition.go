package domain

// Action names, as they appear in the transition table.
const (
	ActionLoadEntries    = "load-entries"
	ActionCreateEntry    = "create-entry"
	ActionUpdateEntry    = "update-entry"
	ActionDeleteEntry    = "delete-entry"
	ActionResetEntries   = "reset-entries"
	ActionPersistEntries = "persist-entries"
)

// Transition is one row of the dispatch table.
type Transition struct {
	From   State     `json:"from" yaml:"from"`
	Event  EventType `json:"event" yaml:"event"`
	Action string    `json:"action" yaml:"action"`
	To     State     `json:"to" yaml:"to"`
}
