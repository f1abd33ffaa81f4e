// Package catalog loads vehicle catalogs from CSV files.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/carpicker/internal/common"
	"github.com/Veraticus/carpicker/internal/model"
)

// RowError identifies a catalog cell that could not be parsed.
type RowError struct {
	Err    error
	Column string
	Value  string
	Line   int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: line %d, column %s: %q: %v", common.ErrInvalidRow, e.Line, e.Column, e.Value, e.Err)
}

// Is makes errors.Is(err, common.ErrInvalidRow) hold for every RowError.
func (e *RowError) Is(target error) bool {
	return target == common.ErrInvalidRow
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// columnIndex maps each catalog column to its position in a CSV header.
type columnIndex map[string]int

// indexHeader locates every catalog column in header. Header names are
// trimmed; extra columns are ignored. Missing columns are reported together.
func indexHeader(header []string, source string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range model.CatalogColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &common.SchemaError{Source: source, Missing: missing}
	}
	return idx, nil
}

// ReadCSV parses a catalog from r. The first record must be a header naming
// every catalog column. Vehicles are returned in file order.
func ReadCSV(r io.Reader) ([]model.Vehicle, error) {
	return readCSV(r, "")
}

func readCSV(r io.Reader, source string) ([]model.Vehicle, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &common.SchemaError{Source: source, Missing: model.CatalogColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	idx, err := indexHeader(header, source)
	if err != nil {
		return nil, err
	}

	var vehicles []model.Vehicle
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		v, err := idx.parse(record, line)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	slog.Debug("Read catalog", "source", source, "vehicles", len(vehicles))

	return vehicles, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func (idx columnIndex) cell(record []string, column string) string {
	i := idx[column]
	if i >= len(record) {
		return ""
	}
	return record[i]
}

func (idx columnIndex) parse(record []string, line int) (model.Vehicle, error) {
	v := model.Vehicle{
		Model:        strings.TrimSpace(idx.cell(record, model.ColumnModel)),
		Transmission: idx.cell(record, model.ColumnTransmission),
		FuelType:     idx.cell(record, model.ColumnFuelType),
	}

	yearText := strings.TrimSpace(idx.cell(record, model.ColumnYear))
	year, err := strconv.Atoi(yearText)
	if err != nil {
		// Years exported through spreadsheets sometimes carry a ".0" suffix.
		f, ferr := strconv.ParseFloat(yearText, 64)
		if ferr != nil || f != float64(int(f)) {
			return model.Vehicle{}, &RowError{Line: line, Column: model.ColumnYear, Value: yearText, Err: errors.New("expected a whole number")}
		}
		year = int(f)
	}
	v.Year = year

	for _, a := range v.Amounts() {
		text := strings.TrimSpace(idx.cell(record, a.Column))
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return model.Vehicle{}, &RowError{Line: line, Column: a.Column, Value: text, Err: errors.New("expected a number")}
		}
		if err := model.CheckAmount(f); err != nil {
			return model.Vehicle{}, &RowError{Line: line, Column: a.Column, Value: text, Err: err}
		}
		*a.Value = f
	}

	return v, nil
}

// LoadFile reads a catalog from the CSV file at path.
func LoadFile(path string) ([]model.Vehicle, error) {
	f, err := os.Open(path) //nolint:gosec // catalog path comes from configuration
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	vehicles, err := readCSV(f, path)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded catalog", "path", path, "vehicles", len(vehicles))

	return vehicles, nil
}

// Resolve returns the first of paths that exists as a regular file.
func Resolve(paths ...string) (string, error) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", common.ErrCatalogNotFound, strings.Join(paths, ", "))
}
