// Package engine implements the catalog query engine: it filters a vehicle
// catalog against a query, scores the survivors and ranks them.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/carpicker/internal/common"
	"github.com/Veraticus/carpicker/internal/model"
)

// Tolerance presets. Tolerance is the fractional slack applied to
// threshold-type constraints: ceilings are relaxed upward and floors downward.
const (
	ToleranceStrict = 0.0
	ToleranceNarrow = 0.05
	ToleranceWide   = 0.10

	DefaultTolerance = ToleranceWide
)

// Engine runs queries against catalog snapshots. It holds no catalog state
// and is safe for concurrent use.
type Engine struct {
	config Config
}

// Config holds configuration options for the query engine.
type Config struct {
	Mode      model.RankMode
	Tolerance float64
	TopK      int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance: DefaultTolerance,
		Mode:      model.ModeRelevance,
		TopK:      model.DefaultTopK,
	}
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	if c.Tolerance < 0 || c.Tolerance >= 1 {
		return fmt.Errorf("%w: tolerance %v must be in [0, 1)", common.ErrInvalidConfig, c.Tolerance)
	}
	if c.TopK < 0 {
		return fmt.Errorf("%w: top_k %d must not be negative", common.ErrInvalidConfig, c.TopK)
	}
	if _, err := model.ParseRankMode(string(c.Mode), model.ModeRelevance); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return nil
}

// New creates a query engine with the default configuration.
func New() *Engine {
	return &Engine{config: DefaultConfig()}
}

// NewWithConfig creates a query engine with custom configuration.
func NewWithConfig(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Mode == "" {
		config.Mode = model.ModeRelevance
	}
	return &Engine{config: config}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Run filters catalog by q, ranks the survivors and formats the selection.
// The catalog is never modified. Zero survivors yield an empty result, not
// an error.
func (e *Engine) Run(catalog []model.Vehicle, q model.Query) (*model.Result, error) {
	mode, err := model.ParseRankMode(string(q.Mode), e.config.Mode)
	if err != nil {
		return nil, err
	}
	topK := q.TopK
	if topK <= 0 {
		topK = e.config.TopK
	}
	if topK <= 0 {
		topK = model.DefaultTopK
	}

	slog.Debug("Running catalog query",
		"catalog_size", len(catalog),
		"mode", mode,
		"tolerance", e.config.Tolerance,
		"constraints", q.Fields())

	survivors := Filter(catalog, q, e.config.Tolerance)

	result := &model.Result{
		Mode:           mode,
		TotalSurvivors: len(survivors),
		Tolerance:      e.config.Tolerance,
		Matches:        []model.Match{},
	}
	if len(survivors) == 0 {
		slog.Debug("No vehicles matched query")
		return result, nil
	}

	ranked := rank(scoreAll(survivors, q), mode, topK)

	result.Matches = make([]model.Match, len(ranked))
	for i, c := range ranked {
		result.Matches[i] = Format(c.vehicle, c.score)
	}
	if mode == model.ModeExhaustivePrice {
		best := result.Matches[0]
		result.BestMatch = &best
	}

	slog.Debug("Catalog query complete",
		"survivors", result.TotalSurvivors,
		"returned", len(result.Matches))

	return result, nil
}

// scoreAll attaches similarity scores to survivors when the query has a
// weighted field. Without one there is nothing to compare against, so
// scores stay nil and relevance ranking falls back to price.
func scoreAll(survivors []model.Vehicle, q model.Query) []candidate {
	scored := HasWeightedFields(q)

	out := make([]candidate, len(survivors))
	for i, v := range survivors {
		out[i] = candidate{vehicle: v}
		if scored {
			s := Score(v, q)
			out[i].score = &s
		}
	}
	return out
}
