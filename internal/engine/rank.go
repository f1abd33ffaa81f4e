package engine

import (
	"sort"

	"github.com/Veraticus/carpicker/internal/model"
)

// candidate is a survivor awaiting ranking.
type candidate struct {
	score   *float64
	vehicle model.Vehicle
}

func (c candidate) scoreValue() float64 {
	if c.score == nil {
		return 0
	}
	return *c.score
}

// rank orders candidates according to mode and returns the selection.
//
// Relevance mode sorts by score descending with price ascending as the
// tie-break and keeps the first topK. Exhaustive-price mode sorts by price
// ascending and keeps everything. Both sorts are stable, so vehicles with
// identical keys keep their catalog order.
func rank(candidates []candidate, mode model.RankMode, topK int) []candidate {
	ranked := make([]candidate, len(candidates))
	copy(ranked, candidates)

	switch mode {
	case model.ModeExhaustivePrice:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].vehicle.Price < ranked[j].vehicle.Price
		})
		return ranked
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			si, sj := ranked[i].scoreValue(), ranked[j].scoreValue()
			if si != sj {
				return si > sj
			}
			return ranked[i].vehicle.Price < ranked[j].vehicle.Price
		})
		if topK > 0 && len(ranked) > topK {
			ranked = ranked[:topK]
		}
		return ranked
	}
}
