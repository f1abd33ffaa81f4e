package engine

import (
	"log/slog"
	"strings"

	"github.com/Veraticus/carpicker/internal/model"
)

// bound is the direction a threshold constraint limits a field in.
type bound int

const (
	// ceiling keeps values at or below threshold*(1+tolerance).
	ceiling bound = iota
	// floor keeps values at or above threshold*(1-tolerance).
	floor
)

// threshold describes a tolerance-banded numeric constraint.
type threshold struct {
	target func(model.Query) *float64
	value  func(model.Vehicle) float64
	name   string
	bound  bound
}

var thresholds = []threshold{
	{
		name:   model.ColumnPrice,
		bound:  ceiling,
		target: func(q model.Query) *float64 { return q.Price },
		value:  func(v model.Vehicle) float64 { return v.Price },
	},
	{
		name:   model.ColumnMileage,
		bound:  ceiling,
		target: func(q model.Query) *float64 { return q.Mileage },
		value:  func(v model.Vehicle) float64 { return v.Mileage },
	},
	{
		name:   model.ColumnMPG,
		bound:  floor,
		target: func(q model.Query) *float64 { return q.MPG },
		value:  func(v model.Vehicle) float64 { return v.MPG },
	},
	{
		name:   model.ColumnFinanceMonthly,
		bound:  ceiling,
		target: func(q model.Query) *float64 { return q.FinanceMonthly },
		value:  func(v model.Vehicle) float64 { return v.FinanceMonthly },
	},
	{
		name:   model.ColumnLeaseMonthly,
		bound:  ceiling,
		target: func(q model.Query) *float64 { return q.LeaseMonthly },
		value:  func(v model.Vehicle) float64 { return v.LeaseMonthly },
	},
	{
		name:   model.ColumnHorsepower,
		bound:  floor,
		target: func(q model.Query) *float64 { return q.Horsepower },
		value:  func(v model.Vehicle) float64 { return v.Horsepower },
	},
}

// limit returns the effective cutoff for a threshold after tolerance.
func (t threshold) limit(target, tolerance float64) float64 {
	if t.bound == floor {
		return target * (1 - tolerance)
	}
	return target * (1 + tolerance)
}

func (t threshold) passes(value, limit float64) bool {
	if t.bound == floor {
		return value >= limit
	}
	return value <= limit
}

// constraint is a single named predicate derived from a query field.
type constraint struct {
	pass func(model.Vehicle) bool
	name string
}

// constraints returns a predicate for every field q specifies.
func constraints(q model.Query, tolerance float64) []constraint {
	var out []constraint

	if q.Year != nil {
		year := *q.Year
		out = append(out, constraint{
			name: model.ColumnYear,
			pass: func(v model.Vehicle) bool { return v.Year == year },
		})
	}
	if q.Transmission != nil {
		want := Normalize(*q.Transmission)
		out = append(out, constraint{
			name: model.ColumnTransmission,
			pass: func(v model.Vehicle) bool { return Normalize(v.Transmission) == want },
		})
	}
	if q.FuelType != nil {
		want := Normalize(*q.FuelType)
		out = append(out, constraint{
			name: model.ColumnFuelType,
			pass: func(v model.Vehicle) bool { return Normalize(v.FuelType) == want },
		})
	}

	for _, t := range thresholds {
		target := t.target(q)
		if target == nil {
			continue
		}
		limit := t.limit(*target, tolerance)
		out = append(out, constraint{
			name: t.name,
			pass: func(v model.Vehicle) bool { return t.passes(t.value(v), limit) },
		})
	}

	return out
}

// Normalize lowercases and trims a categorical value for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Filter returns the vehicles satisfying every constraint q specifies, in
// catalog order. Unspecified fields impose no constraint. The returned slice
// never aliases catalog.
func Filter(catalog []model.Vehicle, q model.Query, tolerance float64) []model.Vehicle {
	survivors := make([]model.Vehicle, len(catalog))
	copy(survivors, catalog)

	for _, c := range constraints(q, tolerance) {
		kept := survivors[:0]
		for _, v := range survivors {
			if c.pass(v) {
				kept = append(kept, v)
			}
		}
		survivors = kept

		slog.Debug("Applied filter", "field", c.name, "remaining", len(survivors))
	}

	return survivors
}
