package memory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/phonebook/pkg/adapters/memory"
	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/aretw0/phonebook/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunKVStoreContract(t, store)
}

func TestMemoryStore_Quota(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.WithQuota(10))

	// "k" + 9 bytes fits exactly.
	require.NoError(t, store.Set(ctx, "k", strings.Repeat("x", 9)))

	err := store.Set(ctx, "k2", "y")
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	// Failed write leaves the previous value in place.
	v, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Len(t, v, 9)

	// Overwriting the same key only counts the new value.
	require.NoError(t, store.Set(ctx, "k", "short"))
	require.NoError(t, store.Set(ctx, "k2", "y"))

	// Deleting releases space.
	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Set(ctx, "k3", "1234"))
}

