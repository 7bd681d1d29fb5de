package domain

import "errors"

// ErrKeyNotFound is returned by a store when the requested key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// ErrQuotaExceeded is returned by a store that refuses a write for capacity reasons.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ErrCorruptData is returned when stored data cannot be decoded into entries.
var ErrCorruptData = errors.New("corrupt phone book data")
