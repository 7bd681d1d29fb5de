package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phonebook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, `
store: redis
storage_key: team-book
redis:
  addr: redis:6379
  db: 2
  ttl: 1h
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "team-book", cfg.StorageKey)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "phonebook:", cfg.Redis.Prefix, "unset fields keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "store: redis\n")
	t.Setenv("PHONEBOOK_STORE", "sqlite")
	t.Setenv("PHONEBOOK_SQLITE_PATH", "/tmp/pb.db")
	t.Setenv("PHONEBOOK_HTTP_METRICS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "/tmp/pb.db", cfg.SQLite.Path)
	assert.False(t, cfg.HTTP.Metrics)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "store: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "store: cassette"))
	assert.ErrorContains(t, err, "unknown store")
}

func TestConfig_Key(t *testing.T) {
	cfg := Default()
	key, err := cfg.Key()
	require.NoError(t, err)
	assert.Nil(t, key)

	cfg.EncryptionKey = strings.Repeat("ab", 32)
	key, err = cfg.Key()
	require.NoError(t, err)
	assert.Len(t, key, 32)

	cfg.EncryptionKey = "abcd"
	assert.Error(t, cfg.Validate())

	cfg.EncryptionKey = "zz"
	assert.Error(t, cfg.Validate())
}
