package domain

// DefaultStorageKey is the key the entry list is persisted under.
const DefaultStorageKey = "phonebook-context-key"

// UndefinedSortKey is what a record without a lastName field sorts as.
// Stored data written by older clients may omit the field entirely.
const UndefinedSortKey = "undefined"
