package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/carpicker/internal/common"
	"github.com/Veraticus/carpicker/internal/model"
)

// CatalogImport records one replacement of the stored catalog.
type CatalogImport struct {
	ImportedAt   time.Time
	Source       string
	ID           int64
	VehicleCount int
}

var vehicleColumns = strings.Join(model.CatalogColumns, ", ")

// ReplaceCatalog swaps the stored catalog for vehicles in a single
// transaction, so readers see either the old catalog or the new one.
// Catalog order is preserved. progress, if non-nil, is called after each
// inserted vehicle with the number inserted so far.
func (s *SQLiteStorage) ReplaceCatalog(ctx context.Context, source string, vehicles []model.Vehicle, progress func(done int)) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(source, "source"); err != nil {
		return err
	}
	if err := validateVehicles(vehicles); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vehicles`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vehicles (position, `+vehicleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare vehicle insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, v := range vehicles {
		if _, err := stmt.ExecContext(ctx,
			i,
			v.Model,
			v.Year,
			v.Price,
			v.Transmission,
			v.Mileage,
			v.FuelType,
			v.MPG,
			v.FinanceMonthly,
			v.LeaseMonthly,
			v.Horsepower,
		); err != nil {
			return fmt.Errorf("failed to insert vehicle %d (%s): %w", i, v.Model, err)
		}
		if progress != nil {
			progress(i + 1)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_imports (source, vehicle_count, imported_at)
		VALUES (?, ?, ?)
	`, source, len(vehicles), time.Now()); err != nil {
		return fmt.Errorf("failed to record catalog import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}

	slog.Info("Replaced catalog", "source", source, "vehicles", len(vehicles))

	return nil
}

// LoadCatalog returns the stored catalog in its original order. The schema
// is verified first so a drifted table reports common.ErrSchemaMismatch
// rather than an empty catalog.
func (s *SQLiteStorage) LoadCatalog(ctx context.Context) ([]model.Vehicle, error) {
	if err := s.VerifySchema(ctx); err != nil {
		return nil, err
	}
	return s.loadCatalogTx(ctx, s.db)
}

func (s *SQLiteStorage) loadCatalogTx(ctx context.Context, q queryable) ([]model.Vehicle, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	vehicles := []model.Vehicle{}
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(
			&v.Model,
			&v.Year,
			&v.Price,
			&v.Transmission,
			&v.Mileage,
			&v.FuelType,
			&v.MPG,
			&v.FinanceMonthly,
			&v.LeaseMonthly,
			&v.Horsepower,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicles: %w", err)
	}

	return vehicles, nil
}

// CountVehicles returns the number of vehicles in the stored catalog.
func (s *SQLiteStorage) CountVehicles(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return count, nil
}

// LatestImport returns the most recent catalog import, or nil if the
// catalog has never been imported.
func (s *SQLiteStorage) LatestImport(ctx context.Context) (*CatalogImport, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var imp CatalogImport
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, vehicle_count, imported_at
		FROM catalog_imports
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&imp.ID, &imp.Source, &imp.VehicleCount, &imp.ImportedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest import: %w", err)
	}

	return &imp, nil
}

// VerifySchema checks that the vehicles table carries every catalog column.
func (s *SQLiteStorage) VerifySchema(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM pragma_table_info('vehicles')`)
	if err != nil {
		return fmt.Errorf("failed to inspect vehicles table: %w", err)
	}
	defer func() { _ = rows.Close() }()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan column name: %w", err)
		}
		present[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating columns: %w", err)
	}

	var missing []string
	for _, col := range model.CatalogColumns {
		if !present[strings.ToLower(col)] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &common.SchemaError{Source: s.dbPath, Missing: missing}
	}
	return nil
}
