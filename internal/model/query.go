package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/carpicker/internal/common"
)

// RankMode selects how surviving vehicles are ordered.
type RankMode string

const (
	// ModeRelevance orders by similarity score, highest first, and keeps the top K.
	ModeRelevance RankMode = "relevance"
	// ModeExhaustivePrice orders every survivor by price, cheapest first.
	ModeExhaustivePrice RankMode = "exhaustive-price"
)

// DefaultTopK is the number of matches returned in relevance mode when the
// query does not ask for a specific count.
const DefaultTopK = 3

// Query keys accepted alongside the catalog columns.
const (
	KeyMode = "mode"
	KeyTopK = "top_k"
)

// ParseRankMode validates a mode name. An empty name yields fallback.
func ParseRankMode(s string, fallback RankMode) (RankMode, error) {
	switch RankMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return fallback, nil
	case ModeRelevance:
		return ModeRelevance, nil
	case ModeExhaustivePrice, "price", "exhaustive":
		return ModeExhaustivePrice, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrInvalidMode, s)
	}
}

// Query is a set of optional constraints. A nil field is unconstrained; a
// non-nil field is constrained even when it points at a zero value.
type Query struct {
	Year           *int
	Price          *float64
	Transmission   *string
	Mileage        *float64
	FuelType       *string
	MPG            *float64
	FinanceMonthly *float64
	LeaseMonthly   *float64
	Horsepower     *float64
	Mode           RankMode
	TopK           int
}

// IsEmpty reports whether no field is constrained.
func (q Query) IsEmpty() bool {
	return q.Year == nil && q.Price == nil && q.Transmission == nil &&
		q.Mileage == nil && q.FuelType == nil && q.MPG == nil &&
		q.FinanceMonthly == nil && q.LeaseMonthly == nil && q.Horsepower == nil
}

// Fields returns the constrained fields as display strings keyed by column
// name, for logging.
func (q Query) Fields() map[string]string {
	out := make(map[string]string)
	if q.Year != nil {
		out[ColumnYear] = strconv.Itoa(*q.Year)
	}
	if q.Transmission != nil {
		out[ColumnTransmission] = *q.Transmission
	}
	if q.FuelType != nil {
		out[ColumnFuelType] = *q.FuelType
	}
	for name, v := range map[string]*float64{
		ColumnPrice:          q.Price,
		ColumnMileage:        q.Mileage,
		ColumnMPG:            q.MPG,
		ColumnFinanceMonthly: q.FinanceMonthly,
		ColumnLeaseMonthly:   q.LeaseMonthly,
		ColumnHorsepower:     q.Horsepower,
	} {
		if v != nil {
			out[name] = strconv.FormatFloat(*v, 'f', -1, 64)
		}
	}
	return out
}

// ParseQueryStrings builds a Query from raw text values, as collected from
// command-line flags or interactive prompts. Blank values are treated as
// absent. Unknown keys are ignored.
func ParseQueryStrings(raw map[string]string) (Query, error) {
	values := make(map[string]any, len(raw))
	for k, v := range raw {
		values[k] = v
	}
	return ParseQuery(values)
}

// ParseQuery builds a Query from decoded JSON values. Each value may be a
// number, a numeric string, or for text fields a string. nil and blank
// strings are treated as absent. A value of the wrong type yields an error
// wrapping common.ErrInvalidQueryValue that names the offending field.
func ParseQuery(raw map[string]any) (Query, error) {
	var q Query
	var err error

	if q.Year, err = intField(raw, ColumnYear); err != nil {
		return Query{}, err
	}
	if q.Transmission, err = textField(raw, ColumnTransmission); err != nil {
		return Query{}, err
	}
	if q.FuelType, err = textField(raw, ColumnFuelType); err != nil {
		return Query{}, err
	}

	numeric := []struct {
		dst  **float64
		name string
	}{
		{&q.Price, ColumnPrice},
		{&q.Mileage, ColumnMileage},
		{&q.MPG, ColumnMPG},
		{&q.FinanceMonthly, ColumnFinanceMonthly},
		{&q.LeaseMonthly, ColumnLeaseMonthly},
		{&q.Horsepower, ColumnHorsepower},
	}
	for _, f := range numeric {
		if *f.dst, err = floatField(raw, f.name); err != nil {
			return Query{}, err
		}
	}

	if v, ok := present(raw, KeyMode); ok {
		s, isString := v.(string)
		if !isString {
			return Query{}, common.NewFieldError(KeyMode, fmt.Sprint(v), fmt.Errorf("expected text"))
		}
		if q.Mode, err = ParseRankMode(s, ""); err != nil {
			return Query{}, err
		}
	}

	topK, err := intField(raw, KeyTopK)
	if err != nil {
		return Query{}, err
	}
	if topK != nil {
		if *topK < 0 {
			return Query{}, common.NewFieldError(KeyTopK, strconv.Itoa(*topK), fmt.Errorf("must not be negative"))
		}
		q.TopK = *topK
	}

	return q, nil
}

// present returns the value stored under key unless it is missing, null or
// a blank string.
func present(raw map[string]any, key string) (any, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

func floatField(raw map[string]any, key string) (*float64, error) {
	v, ok := present(raw, key)
	if !ok {
		return nil, nil
	}

	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return nil, common.NewFieldError(key, val.String(), err)
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, common.NewFieldError(key, val, fmt.Errorf("not a number"))
		}
		f = parsed
	default:
		return nil, common.NewFieldError(key, fmt.Sprint(v), fmt.Errorf("expected a number"))
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, common.NewFieldError(key, fmt.Sprint(v), fmt.Errorf("not a number"))
	}
	if f < 0 {
		return nil, common.NewFieldError(key, fmt.Sprint(v), fmt.Errorf("must not be negative"))
	}
	return &f, nil
}

func intField(raw map[string]any, key string) (*int, error) {
	v, ok := present(raw, key)
	if !ok {
		return nil, nil
	}

	var n int
	switch val := v.(type) {
	case int:
		n = val
	case int64:
		n = int(val)
	case float64:
		if val != float64(int(val)) {
			return nil, common.NewFieldError(key, fmt.Sprint(val), fmt.Errorf("expected a whole number"))
		}
		n = int(val)
	case json.Number:
		parsed, err := strconv.Atoi(val.String())
		if err != nil {
			return nil, common.NewFieldError(key, val.String(), fmt.Errorf("expected a whole number"))
		}
		n = parsed
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, common.NewFieldError(key, val, fmt.Errorf("expected a whole number"))
		}
		n = parsed
	default:
		return nil, common.NewFieldError(key, fmt.Sprint(v), fmt.Errorf("expected a whole number"))
	}
	return &n, nil
}

func textField(raw map[string]any, key string) (*string, error) {
	v, ok := present(raw, key)
	if !ok {
		return nil, nil
	}
	s, isString := v.(string)
	if !isString {
		return nil, common.NewFieldError(key, fmt.Sprint(v), fmt.Errorf("expected text"))
	}
	return &s, nil
}
