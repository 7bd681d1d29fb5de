package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunKVStoreContract runs a suite of tests to verify that a KVStore implementation
// adheres to the defined interface contract.
func RunKVStoreContract(t *testing.T, store KVStore) {
	ctx := context.Background()
	key := "contract-test-key-" + time.Now().Format("20060102150405")

	t.Run("Set and Get", func(t *testing.T) {
		value := `[{"id":1,"firstName":"Fred","lastName":"Allen","phoneNumber":"210-657-9886"}]`

		err := store.Set(ctx, key, value)
		require.NoError(t, err, "Set should not return error")

		loaded, err := store.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, value, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, "first"))
		require.NoError(t, store.Set(ctx, key, "second"))

		loaded, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", loaded)
	})

	t.Run("Empty Value Is Not Missing", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, ""))

		loaded, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "", loaded)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, "doomed"))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound, "Get after Delete should return ErrKeyNotFound")
	})

	t.Run("Delete Non-Existent", func(t *testing.T) {
		err := store.Delete(ctx, "never-written-"+key)
		assert.NoError(t, err)
	})

	t.Run("Keys Are Isolated", func(t *testing.T) {
		a, b := key+"-a", key+"-b"
		defer func() {
			_ = store.Delete(ctx, a)
			_ = store.Delete(ctx, b)
		}()

		require.NoError(t, store.Set(ctx, a, "A"))
		require.NoError(t, store.Set(ctx, b, "B"))

		got, err := store.Get(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, "A", got)

		got, err = store.Get(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, "B", got)
	})
}
