package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/aretw0/phonebook/pkg/ports"
)

// MockStore is a minimal map-backed KVStore used to validate the contract itself.
type MockStore struct {
	data map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]string),
	}
}

func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestKVStore_Contract(t *testing.T) {
	ports.RunKVStoreContract(t, NewMockStore())
}
