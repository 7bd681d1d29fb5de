package runtime

import (
	"context"
	"errors"

	"github.com/aretw0/phonebook/pkg/domain"
)

// loadEntries replaces the entries with what is stored under the machine's key.
// It is the only place external data enters the machine, so every failure
// falls back to the seed list instead of propagating.
func loadEntries(ctx context.Context, m *Machine, _ []domain.Entry, _ *domain.Entry) []domain.Entry {
	raw, err := m.store.Get(ctx, m.key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			m.storageError(ctx, domain.StorageOpRead, err)
		}
		return domain.Seed()
	}

	entries, err := decodeEntries(raw)
	if err != nil {
		m.storageError(ctx, domain.StorageOpDecode, err)
		return domain.Seed()
	}

	sortEntries(m.collator, entries)
	return entries
}

// createEntry appends without re-sorting; order is restored on the next load.
func createEntry(_ context.Context, _ *Machine, entries []domain.Entry, payload *domain.Entry) []domain.Entry {
	return append(entries, *payload)
}

// updateEntry drops every entry sharing the payload's ID and appends the
// payload at the tail. With no match it behaves like createEntry.
func updateEntry(_ context.Context, _ *Machine, entries []domain.Entry, payload *domain.Entry) []domain.Entry {
	return append(withoutID(entries, payload.ID), *payload)
}

func deleteEntry(_ context.Context, _ *Machine, entries []domain.Entry, payload *domain.Entry) []domain.Entry {
	return withoutID(entries, payload.ID)
}

func resetEntries(_ context.Context, _ *Machine, _ []domain.Entry, _ *domain.Entry) []domain.Entry {
	return domain.Seed()
}

// persistEntries writes the entries out. A failed write is logged and the
// in-memory entries are kept as they are.
func persistEntries(ctx context.Context, m *Machine, entries []domain.Entry, _ *domain.Entry) []domain.Entry {
	raw, err := encodeEntries(entries)
	if err != nil {
		m.storageError(ctx, domain.StorageOpWrite, err)
		return entries
	}

	if err := m.store.Set(ctx, m.key, raw); err != nil {
		m.storageError(ctx, domain.StorageOpWrite, err)
	}
	return entries
}

func withoutID(entries []domain.Entry, id int) []domain.Entry {
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
