package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the runtime configuration of the phonebook binary.
//
// Values are resolved in order: defaults, YAML file, environment
// (PHONEBOOK_*, with .env loaded first), then command-line flags.
type Config struct {
	Store      string `yaml:"store" env:"STORE"`
	StorageKey string `yaml:"storage_key" env:"STORAGE_KEY"`
	Locale     string `yaml:"locale" env:"LOCALE"`

	File   FileConfig   `yaml:"file" envPrefix:"FILE_"`
	Redis  RedisConfig  `yaml:"redis" envPrefix:"REDIS_"`
	SQLite SQLiteConfig `yaml:"sqlite" envPrefix:"SQLITE_"`

	Log  LogConfig  `yaml:"log" envPrefix:"LOG_"`
	HTTP HTTPConfig `yaml:"http" envPrefix:"HTTP_"`

	// EncryptionKey is a hex-encoded 32-byte AES key. Empty disables encryption.
	EncryptionKey string `yaml:"encryption_key" env:"ENCRYPTION_KEY"`
}

type FileConfig struct {
	Dir string `yaml:"dir" env:"DIR"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"ADDR"`
	Password string        `yaml:"password" env:"PASSWORD"`
	DB       int           `yaml:"db" env:"DB"`
	Prefix   string        `yaml:"prefix" env:"PREFIX"`
	TTL      time.Duration `yaml:"ttl" env:"TTL"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" env:"PATH"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

type HTTPConfig struct {
	Port    string `yaml:"port" env:"PORT"`
	Metrics bool   `yaml:"metrics" env:"METRICS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store:  StoreFile,
		Locale: "und",
		File:   FileConfig{Dir: ".phonebook/storage"},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "phonebook:",
		},
		SQLite: SQLiteConfig{Path: ".phonebook/phonebook.db"},
		Log:    LogConfig{Level: "info", Format: "text"},
		HTTP:   HTTPConfig{Port: "8080", Metrics: true},
	}
}

// Load resolves the configuration from defaults, the optional YAML file at
// path and the environment. A missing file is only an error when path was
// given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	// The .env file is optional.
	_ = godotenv.Load()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "PHONEBOOK_"}); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks values that cannot be caught by parsing alone.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want memory, file, redis or sqlite)", c.Store)
	}

	if c.EncryptionKey != "" {
		if _, err := c.Key(); err != nil {
			return err
		}
	}
	return nil
}

// Key decodes the encryption key. It returns nil when encryption is disabled.
func (c Config) Key() ([]byte, error) {
	if c.EncryptionKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex characters)")
	}
	return key, nil
}
