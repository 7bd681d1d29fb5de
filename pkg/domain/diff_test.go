package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	ready := StateReady
	running := StateRunning

	ada := Entry{ID: 6, FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "111-111-1111"}
	bill := Entry{ID: 3, FirstName: "Bill", LastName: "Gates", PhoneNumber: "343-654-9688"}
	billNew := Entry{ID: 3, FirstName: "William", LastName: "Gates", PhoneNumber: "343-654-9688"}

	tests := []struct {
		name     string
		old      *Snapshot
		new      *Snapshot
		wantDiff *SnapshotDiff
	}{
		{
			name:     "Initial Load (Old is Nil)",
			old:      nil,
			new:      &Snapshot{State: StateReady, Entries: []Entry{bill}},
			wantDiff: &SnapshotDiff{State: &ready, Added: []Entry{bill}},
		},
		{
			name:     "No Changes",
			old:      &Snapshot{State: StateReady, Entries: []Entry{bill}},
			new:      &Snapshot{State: StateReady, Entries: []Entry{bill}},
			wantDiff: nil,
		},
		{
			name:     "Create",
			old:      &Snapshot{State: StateReady, Entries: []Entry{bill}},
			new:      &Snapshot{State: StateRunning, Entries: []Entry{bill, ada}},
			wantDiff: &SnapshotDiff{State: &running, Added: []Entry{ada}},
		},
		{
			name:     "Update moves to tail",
			old:      &Snapshot{State: StateReady, Entries: []Entry{bill, ada}},
			new:      &Snapshot{State: StateRunning, Entries: []Entry{ada, billNew}},
			wantDiff: &SnapshotDiff{State: &running, Changed: []Entry{billNew}},
		},
		{
			name:     "Delete",
			old:      &Snapshot{State: StateReady, Entries: []Entry{bill, ada}},
			new:      &Snapshot{State: StateRunning, Entries: []Entry{ada}},
			wantDiff: &SnapshotDiff{State: &running, Removed: []Entry{bill}},
		},
		{
			name:     "Reorder only",
			old:      &Snapshot{State: StateReady, Entries: []Entry{ada, bill}},
			new:      &Snapshot{State: StateReady, Entries: []Entry{bill, ada}},
			wantDiff: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			assert.Equal(t, tt.wantDiff, got)
		})
	}
}

func TestDiff_JSON(t *testing.T) {
	old := &Snapshot{State: StateIdle}
	new := &Snapshot{State: StateReady, Entries: Seed()}

	diff := Diff(old, new)
	require.NotNil(t, diff)

	data, err := json.Marshal(diff)
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.Contains(s, `"state":"ready"`), s)
	assert.True(t, strings.Contains(s, `"lastName":"Wozniak"`), s)
	assert.False(t, strings.Contains(s, `"removed"`), "empty slices should be omitted")
}
