package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/carpicker/internal/catalog"
	"github.com/Veraticus/carpicker/internal/common"
	"github.com/Veraticus/carpicker/internal/config"
	"github.com/Veraticus/carpicker/internal/model"
	"github.com/Veraticus/carpicker/internal/server"
	"github.com/Veraticus/carpicker/internal/storage"
)

// Catalog sources selectable with --source.
const (
	sourceCSV = "csv"
	sourceDB  = "db"
)

// dbRetry bounds how long a database read waits out a concurrent import.
var dbRetry = common.RetryOptions{
	MaxAttempts:  4,
	InitialDelay: 250 * time.Millisecond,
	MaxDelay:     2 * time.Second,
}

// loadSettings decodes and validates the current viper configuration.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return settings, nil
}

// initStorage opens the catalog database and brings its schema up to date.
func initStorage(ctx context.Context, settings *config.Settings) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(settings.Database.Path)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// catalogLoader returns a loader for the named catalog source.
func catalogLoader(settings *config.Settings, source string) (server.Loader, error) {
	switch source {
	case "", sourceCSV:
		return func(_ context.Context) ([]model.Vehicle, string, error) {
			path, err := catalog.Resolve(settings.Catalog.Paths...)
			if err != nil {
				return nil, "", err
			}
			vehicles, err := catalog.LoadFile(path)
			if err != nil {
				return nil, "", err
			}
			return vehicles, path, nil
		}, nil
	case sourceDB:
		return func(ctx context.Context) ([]model.Vehicle, string, error) {
			store, err := initStorage(ctx, settings)
			if err != nil {
				return nil, "", err
			}
			defer func() { _ = store.Close() }()

			// A concurrent import holds the write lock; retry until it commits.
			var vehicles []model.Vehicle
			err = common.WithRetry(ctx, func() error {
				var loadErr error
				vehicles, loadErr = store.LoadCatalog(ctx)
				if errors.Is(loadErr, common.ErrSchemaMismatch) {
					return common.Permanent(loadErr)
				}
				return loadErr
			}, dbRetry)
			if err != nil {
				return nil, "", err
			}
			if len(vehicles) == 0 {
				slog.Warn("Stored catalog is empty; run 'carpicker import' first", "database", store.Path())
			}
			return vehicles, store.Path(), nil
		}, nil
	default:
		return nil, common.NewUserError(
			fmt.Sprintf("Unknown catalog source %q (expected %s or %s)", source, sourceCSV, sourceDB),
			common.ErrInvalidConfig)
	}
}
