// Package testutil provides shared test helpers for the carpicker packages.
// It offers seeded in-memory catalogs so tests across packages start from
// the same data.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/carpicker/internal/model"
	"github.com/Veraticus/carpicker/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage  *storage.SQLiteStorage
	t        *testing.T
	Vehicles []model.Vehicle
}

// SetupTestDB creates a new in-memory test database seeded with vehicles.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.ToyotaFixture())
func SetupTestDB(t *testing.T, vehicles []model.Vehicle) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Vehicles: vehicles})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Path           string
	Vehicles       []model.Vehicle
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
// An empty Path uses an in-memory database.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	path := opts.Path
	if path == "" {
		path = ":memory:"
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if opts.Vehicles != nil {
		if err := store.ReplaceCatalog(ctx, "testutil", opts.Vehicles, nil); err != nil {
			t.Fatalf("failed to seed catalog: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage:  store,
		Vehicles: opts.Vehicles,
		t:        t,
	}
}

// WriteCatalogFile writes content to a catalog file in a fresh temp
// directory and returns its path.
func WriteCatalogFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "toyota.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	return path
}
