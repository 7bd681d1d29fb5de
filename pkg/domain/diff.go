package domain

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	// State is set only when the machine moved.
	State *State `json:"state,omitempty"`

	// Added holds entries whose ID did not exist before.
	Added []Entry `json:"added,omitempty"`

	// Changed holds the new value of entries whose fields changed.
	Changed []Entry `json:"changed,omitempty"`

	// Removed holds the old value of entries whose ID is gone.
	Removed []Entry `json:"removed,omitempty"`
}

// Diff calculates the difference between old and new.
// If old is nil, it returns a diff representing the entire new snapshot (initial load).
// Entries are matched by ID; when IDs repeat, the last occurrence wins.
func Diff(old, new *Snapshot) *SnapshotDiff {
	if new == nil {
		return nil
	}

	diff := &SnapshotDiff{}

	if old == nil {
		diff.State = &new.State
		diff.Added = CloneEntries(new.Entries)
		return diff
	}

	if old.State != new.State {
		diff.State = &new.State
	}

	before := indexByID(old.Entries)
	after := indexByID(new.Entries)

	for _, e := range new.Entries {
		prev, existed := before[e.ID]
		switch {
		case !existed:
			diff.Added = append(diff.Added, e)
		case prev != e && after[e.ID] == e:
			diff.Changed = append(diff.Changed, e)
		}
	}
	for _, e := range old.Entries {
		if _, exists := after[e.ID]; !exists {
			diff.Removed = append(diff.Removed, e)
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func indexByID(entries []Entry) map[int]Entry {
	idx := make(map[int]Entry, len(entries))
	for _, e := range entries {
		idx[e.ID] = e
	}
	return idx
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.State == nil &&
		len(d.Added) == 0 &&
		len(d.Changed) == 0 &&
		len(d.Removed) == 0
}
