package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/phonebook/pkg/adapters/sqlite"
	"github.com/aretw0/phonebook/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_Contract(t *testing.T) {
	store, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ports.RunKVStoreContract(t, store)
}

func TestSQLiteStore_Durable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "phonebook.db")

	store, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", "persisted"))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}

func TestSQLiteStore_ClosedDatabase(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.Error(t, store.Set(ctx, "k", "v"))
}
