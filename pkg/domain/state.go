package domain

// State is the name of a machine state.
type State string

const (
	StateIdle    State = "idle"    // Waiting for a READ
	StateReady   State = "ready"   // Entries loaded, accepting one mutation
	StateRunning State = "running" // Mutation applied, waiting for FINISH
)

// InitialState is the state every new machine starts in.
const InitialState = StateIdle

// Snapshot is the read surface exposed to presentation layers.
type Snapshot struct {
	State   State   `json:"state"`
	Entries []Entry `json:"entries"`
}
