package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/phonebook"
	"github.com/aretw0/phonebook/internal/cli"
	"github.com/aretw0/phonebook/internal/config"
	"github.com/aretw0/phonebook/internal/logging"
	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "phonebook",
	Short: "Phonebook manages contact entries through a small state machine",
	Long: `Phonebook keeps a list of contacts sorted by last name and persists it to a
key-value store (file, SQLite, Redis or memory). Every change runs one
READ → mutation → FINISH cycle of the underlying state machine.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file")
	flags.String("store", "", "Storage backend: memory, file, redis or sqlite")
	flags.String("dir", "", "Directory for the file store")
	flags.String("redis-addr", "", "Redis address (host:port)")
	flags.String("sqlite-path", "", "SQLite database path")
	flags.String("key", "", "Storage key the entries are persisted under")
	flags.String("locale", "", "BCP 47 locale used to sort last names")
	flags.String("log-format", "", "Log format: text or json")
	flags.Bool("debug", false, "Enable debug logging")
}

// app bundles everything a command needs.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	closer io.Closer
	book   *phonebook.Controller
}

func (a *app) Close() error {
	return a.closer.Close()
}

// resolveConfig merges the config file, environment and explicitly set flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("store", &cfg.Store)
	override("dir", &cfg.File.Dir)
	override("redis-addr", &cfg.Redis.Addr)
	override("sqlite-path", &cfg.SQLite.Path)
	override("key", &cfg.StorageKey)
	override("locale", &cfg.Locale)
	override("log-format", &cfg.Log.Format)
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}

	return cfg, cfg.Validate()
}

// newApp resolves configuration and opens the store. Callers must Close it.
func newApp(ctx context.Context, cmd *cobra.Command, hooks ...domain.LifecycleHooks) (*app, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithFormat(cmd.ErrOrStderr(), level, cfg.Log.Format)

	store, closer, err := cli.OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	book, err := cli.CreateController(cfg, store, logger, hooks...)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, closer: closer, book: book}, nil
}
