package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/aretw0/phonebook/pkg/persistence/middleware"
	"github.com/aretw0/phonebook/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secretList = `[{"id":1,"firstName":"Fred","lastName":"Allen","phoneNumber":"210-657-9886"}]`

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunKVStoreContract(t, mw(NewMockStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := NewMockStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secureStore := mw(underlyingStore)

	ctx := context.Background()

	require.NoError(t, secureStore.Set(ctx, domain.DefaultStorageKey, secretList))

	// Underlying store must not see the plaintext.
	raw, err := underlyingStore.Get(ctx, domain.DefaultStorageKey)
	require.NoError(t, err)
	assert.False(t, strings.Contains(raw, "Allen"), "plaintext leaked: %s", raw)
	assert.True(t, strings.HasPrefix(raw, "enc:v1:"))

	loaded, err := secureStore.Get(ctx, domain.DefaultStorageKey)
	require.NoError(t, err)
	assert.Equal(t, secretList, loaded)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := NewMockStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	secureStoreOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)
	require.NoError(t, secureStoreOld.Set(ctx, "k", "encrypted-with-old-key"))

	secureStoreNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	loaded, err := secureStoreNew.Get(ctx, "k")
	require.NoError(t, err, "Load with rotated key failed")
	assert.Equal(t, "encrypted-with-old-key", loaded)

	require.NoError(t, secureStoreNew.Set(ctx, "k", "encrypted-with-new-key"))

	_, err = secureStoreOld.Get(ctx, "k")
	assert.Error(t, err, "Expected failure when loading new-key encryption with old-key middleware")
}

func TestEncryptionMiddleware_PlaintextRejected(t *testing.T) {
	underlyingStore := NewMockStore()
	ctx := context.Background()
	require.NoError(t, underlyingStore.Set(ctx, "k", secretList))

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)

	_, err := secureStore.Get(ctx, "k")
	assert.ErrorIs(t, err, middleware.ErrNotEncrypted)
}

func TestEncryptionMiddleware_MissingKeyPassesThrough(t *testing.T) {
	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(NewMockStore())

	_, err := secureStore.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for invalid key size")
		}
	}()
	middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
}

func TestChain_Order(t *testing.T) {
	var calls []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.KVStore) ports.KVStore {
			return &recordingStore{KVStore: next, name: name, calls: &calls}
		}
	}

	store := middleware.Chain(NewMockStore(), tag("outer"), tag("inner"))
	require.NoError(t, store.Set(context.Background(), "k", "v"))

	assert.Equal(t, []string{"outer", "inner"}, calls)
}

type recordingStore struct {
	ports.KVStore
	name  string
	calls *[]string
}

func (r *recordingStore) Set(ctx context.Context, key, value string) error {
	*r.calls = append(*r.calls, r.name)
	return r.KVStore.Set(ctx, key, value)
}
