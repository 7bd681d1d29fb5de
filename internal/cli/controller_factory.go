package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/phonebook"
	"github.com/aretw0/phonebook/internal/config"
	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/aretw0/phonebook/pkg/observability"
	"github.com/aretw0/phonebook/pkg/ports"
	"golang.org/x/text/language"
)

// CreateController initializes a Controller with standard CLI conventions.
func CreateController(cfg config.Config, store ports.KVStore, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*phonebook.Controller, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}

	all := append([]domain.LifecycleHooks{observability.LoggingHooks(logger)}, hooks...)

	return phonebook.New(store,
		phonebook.WithLogger(logger),
		phonebook.WithLocale(tag),
		phonebook.WithStorageKey(cfg.StorageKey),
		phonebook.WithLifecycleHooks(observability.Combine(all...)),
	), nil
}
