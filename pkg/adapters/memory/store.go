package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/phonebook/pkg/domain"
)

// Store implements ports.KVStore in memory.
// Safe for concurrent use.
type Store struct {
	data  map[string]string
	used  int
	quota int
	mu    sync.RWMutex
}

// Option configures the Store.
type Option func(*Store)

// WithQuota caps the total size in bytes of keys plus values, the way
// browser local storage does. Writes that would exceed it fail with
// domain.ErrQuotaExceeded. Zero means unlimited.
func WithQuota(bytes int) Option {
	return func(s *Store) {
		s.quota = bytes
	}
}

// NewStore creates a new in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves a value from memory.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

// Set stores a value in memory.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used
	if old, ok := s.data[key]; ok {
		used -= len(key) + len(old)
	}
	used += len(key) + len(value)

	if s.quota > 0 && used > s.quota {
		return fmt.Errorf("setting %q (%d bytes): %w", key, len(value), domain.ErrQuotaExceeded)
	}

	s.data[key] = value
	s.used = used
	return nil
}

// Delete removes a key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.data[key]; ok {
		s.used -= len(key) + len(old)
		delete(s.data, key)
	}
	return nil
}
