package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/phonebook/internal/config"
	"github.com/aretw0/phonebook/pkg/adapters/file"
	"github.com/aretw0/phonebook/pkg/adapters/memory"
	"github.com/aretw0/phonebook/pkg/adapters/redis"
	"github.com/aretw0/phonebook/pkg/adapters/sqlite"
	"github.com/aretw0/phonebook/pkg/persistence/middleware"
	"github.com/aretw0/phonebook/pkg/ports"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore builds the configured KVStore, wrapped with encryption when a key is set.
// The returned closer releases backend connections.
func OpenStore(ctx context.Context, cfg config.Config) (ports.KVStore, io.Closer, error) {
	var store ports.KVStore
	var closer io.Closer = nopCloser{}

	switch cfg.Store {
	case config.StoreMemory:
		store = memory.NewStore()
	case config.StoreFile:
		store = file.New(cfg.File.Dir)
	case config.StoreRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		store, closer = rs, rs
	case config.StoreSQLite:
		ss, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		store, closer = ss, ss
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	key, err := cfg.Key()
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	if key != nil {
		store = middleware.Chain(store, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}

	return store, closer, nil
}
