/*
Package phonebook manages a list of contact records through a small finite state machine.

The machine sequences CRUD-style mutations and persists the resulting list to a
key-value store at explicit checkpoints. Exactly one mutation happens between a
load and the next persisted write.

# Concept

The controller cycles through three states:

	idle --READ--> ready --CREATE|UPDATE|DELETE|RESET--> running --FINISH--> idle

READ loads entries from storage (falling back to a built-in seed list when
storage is empty or unreadable) and sorts them by last name. A single mutation
is then applied in memory, and FINISH writes the list back. Events not legal in
the current state are ignored. Storage failures are logged, never returned.

# Usage

	store := memory.NewStore()
	book := phonebook.New(store)

	ctx := context.Background()
	book.Dispatch(ctx, domain.Read())
	book.Dispatch(ctx, domain.Create(domain.Entry{ID: 6, FirstName: "Ada", LastName: "Lovelace"}))
	book.Dispatch(ctx, domain.Finish())

	for _, e := range book.Entries() {
		fmt.Println(e.LastName)
	}

Apply wraps the READ → mutation → FINISH cycle for callers that do not need
to observe the intermediate states.

# Storage

Any ports.KVStore works. The module ships memory, file, Redis and SQLite
adapters under pkg/adapters, and an AES-GCM encryption middleware under
pkg/persistence/middleware.
*/
package phonebook
