package engine

import (
	"math"

	"github.com/Veraticus/carpicker/internal/model"
)

// weighted is a numeric field that contributes to the similarity score.
type weighted struct {
	target func(model.Query) *float64
	value  func(model.Vehicle) float64
	name   string
	weight float64
}

// Score weights. Price dominates; horsepower matters least.
var weights = []weighted{
	{
		name:   model.ColumnPrice,
		weight: 3,
		target: func(q model.Query) *float64 { return q.Price },
		value:  func(v model.Vehicle) float64 { return v.Price },
	},
	{
		name:   model.ColumnMileage,
		weight: 2,
		target: func(q model.Query) *float64 { return q.Mileage },
		value:  func(v model.Vehicle) float64 { return v.Mileage },
	},
	{
		name:   model.ColumnMPG,
		weight: 2,
		target: func(q model.Query) *float64 { return q.MPG },
		value:  func(v model.Vehicle) float64 { return v.MPG },
	},
	{
		name:   model.ColumnFinanceMonthly,
		weight: 2,
		target: func(q model.Query) *float64 { return q.FinanceMonthly },
		value:  func(v model.Vehicle) float64 { return v.FinanceMonthly },
	},
	{
		name:   model.ColumnLeaseMonthly,
		weight: 2,
		target: func(q model.Query) *float64 { return q.LeaseMonthly },
		value:  func(v model.Vehicle) float64 { return v.LeaseMonthly },
	},
	{
		name:   model.ColumnHorsepower,
		weight: 1.5,
		target: func(q model.Query) *float64 { return q.Horsepower },
		value:  func(v model.Vehicle) float64 { return v.Horsepower },
	},
}

// scorable reports whether a query target can take part in scoring. A zero
// target has no relative deviation and is left out of both sums.
func scorable(target *float64) bool {
	return target != nil && *target != 0
}

// HasWeightedFields reports whether q specifies any field that contributes
// to the similarity score.
func HasWeightedFields(q model.Query) bool {
	for _, w := range weights {
		if scorable(w.target(q)) {
			return true
		}
	}
	return false
}

// Score returns the similarity of v to the numeric targets in q on a 0-100
// scale. Each present weighted field contributes (1 - |v-q|/q) * weight and
// the sum is normalized by the total weight of present fields. Absent fields
// contribute to neither sum. Contributions are not clamped, so a field that
// deviates by more than 100% pulls the score down and can make it negative.
func Score(v model.Vehicle, q model.Query) float64 {
	var score, totalWeight float64

	for _, w := range weights {
		target := w.target(q)
		if !scorable(target) {
			continue
		}
		deviation := math.Abs(w.value(v)-*target) / *target
		score += (1 - deviation) * w.weight
		totalWeight += w.weight
	}

	if totalWeight == 0 {
		return 0
	}
	return score / totalWeight * 100
}
