package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/carpicker/internal/common"
	"github.com/Veraticus/carpicker/internal/model"
)

func TestReplaceCatalog_PreservesOrder(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	want := createTestVehicles()
	require.NoError(t, store.ReplaceCatalog(ctx, "toyota.csv", want, nil))

	got, err := store.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReplaceCatalog_ReplacesPreviousCatalog(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.ReplaceCatalog(ctx, "first.csv", createTestVehicles(), nil))

	second := createTestVehicles()[:1]
	second[0].Model = "Supra"
	require.NoError(t, store.ReplaceCatalog(ctx, "second.csv", second, nil))

	got, err := store.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Supra", got[0].Model)

	imp, err := store.LatestImport(ctx)
	require.NoError(t, err)
	require.NotNil(t, imp)
	assert.Equal(t, "second.csv", imp.Source)
	assert.Equal(t, 1, imp.VehicleCount)
}

func TestReplaceCatalog_ReportsProgress(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	var seen []int
	err := store.ReplaceCatalog(context.Background(), "toyota.csv", createTestVehicles(), func(done int) {
		seen = append(seen, done)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestReplaceCatalog_InvalidVehicleLeavesCatalogUntouched(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.ReplaceCatalog(ctx, "toyota.csv", createTestVehicles(), nil))

	bad := createTestVehicles()
	bad[2].Price = -1
	err := store.ReplaceCatalog(ctx, "bad.csv", bad, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidVehicle)

	count, err := store.CountVehicles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestReplaceCatalog_EmptyCatalog(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.ReplaceCatalog(ctx, "toyota.csv", createTestVehicles(), nil))
	require.NoError(t, store.ReplaceCatalog(ctx, "empty.csv", []model.Vehicle{}, nil))

	got, err := store.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestLatestImport_NoImports(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	imp, err := store.LatestImport(context.Background())
	require.NoError(t, err)
	assert.Nil(t, imp)
}

func TestVerifySchema(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.VerifySchema(ctx))

	// Simulate a drifted table with a renamed column.
	_, err := store.db.Exec(`ALTER TABLE vehicles RENAME COLUMN fuelType TO fuel`)
	require.NoError(t, err)

	err = store.VerifySchema(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSchemaMismatch)

	var schemaErr *common.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{model.ColumnFuelType}, schemaErr.Missing)

	_, err = store.LoadCatalog(ctx)
	assert.ErrorIs(t, err, common.ErrSchemaMismatch)
}

func TestVerifySchema_BeforeMigration(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	err = store.VerifySchema(context.Background())
	require.Error(t, err)

	var schemaErr *common.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, model.CatalogColumns, schemaErr.Missing)
}
