package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/carpicker/internal/common"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		raw   map[string]any
		check func(t *testing.T, q Query)
		name  string
	}{
		{
			name: "empty map",
			raw:  map[string]any{},
			check: func(t *testing.T, q Query) {
				t.Helper()
				assert.True(t, q.IsEmpty())
				assert.Equal(t, RankMode(""), q.Mode)
				assert.Zero(t, q.TopK)
			},
		},
		{
			name: "json numbers",
			raw:  map[string]any{"year": 2020.0, "price": 21000.0, "horsepower": 150.5},
			check: func(t *testing.T, q Query) {
				t.Helper()
				require.NotNil(t, q.Year)
				assert.Equal(t, 2020, *q.Year)
				require.NotNil(t, q.Price)
				assert.Equal(t, 21000.0, *q.Price)
				require.NotNil(t, q.Horsepower)
				assert.Equal(t, 150.5, *q.Horsepower)
				assert.Nil(t, q.Mileage)
			},
		},
		{
			name: "numeric strings",
			raw:  map[string]any{"year": " 2019 ", "mpg": "35", "finance_monthly": "299.99"},
			check: func(t *testing.T, q Query) {
				t.Helper()
				assert.Equal(t, 2019, *q.Year)
				assert.Equal(t, 35.0, *q.MPG)
				assert.Equal(t, 299.99, *q.FinanceMonthly)
			},
		},
		{
			name: "null and blank are absent",
			raw:  map[string]any{"year": nil, "price": "", "transmission": "   ", "lease_monthly": nil},
			check: func(t *testing.T, q Query) {
				t.Helper()
				assert.True(t, q.IsEmpty())
			},
		},
		{
			name: "explicit zero is present",
			raw:  map[string]any{"price": 0.0, "mileage": "0"},
			check: func(t *testing.T, q Query) {
				t.Helper()
				require.NotNil(t, q.Price)
				assert.Zero(t, *q.Price)
				require.NotNil(t, q.Mileage)
				assert.Zero(t, *q.Mileage)
				assert.False(t, q.IsEmpty())
			},
		},
		{
			name: "text fields kept verbatim",
			raw:  map[string]any{"transmission": " Automatic", "fuelType": "Hybrid"},
			check: func(t *testing.T, q Query) {
				t.Helper()
				assert.Equal(t, " Automatic", *q.Transmission)
				assert.Equal(t, "Hybrid", *q.FuelType)
			},
		},
		{
			name: "mode and top k",
			raw:  map[string]any{"mode": "exhaustive-price", "top_k": 5.0},
			check: func(t *testing.T, q Query) {
				t.Helper()
				assert.Equal(t, ModeExhaustivePrice, q.Mode)
				assert.Equal(t, 5, q.TopK)
			},
		},
		{
			name: "json.Number values",
			raw:  map[string]any{"price": json.Number("18500"), "year": json.Number("2018")},
			check: func(t *testing.T, q Query) {
				t.Helper()
				assert.Equal(t, 18500.0, *q.Price)
				assert.Equal(t, 2018, *q.Year)
			},
		},
		{
			name: "unknown keys ignored",
			raw:  map[string]any{"color": "red"},
			check: func(t *testing.T, q Query) {
				t.Helper()
				assert.True(t, q.IsEmpty())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuery(tt.raw)
			require.NoError(t, err)
			tt.check(t, q)
		})
	}
}

func TestParseQuery_InvalidValues(t *testing.T) {
	tests := []struct {
		raw       map[string]any
		name      string
		wantField string
	}{
		{name: "non-numeric price", raw: map[string]any{"price": "not-a-number"}, wantField: "price"},
		{name: "fractional year", raw: map[string]any{"year": 2020.5}, wantField: "year"},
		{name: "year as text", raw: map[string]any{"year": "twenty"}, wantField: "year"},
		{name: "boolean mileage", raw: map[string]any{"mileage": true}, wantField: "mileage"},
		{name: "numeric transmission", raw: map[string]any{"transmission": 6.0}, wantField: "transmission"},
		{name: "negative horsepower", raw: map[string]any{"horsepower": -5.0}, wantField: "horsepower"},
		{name: "NaN mpg", raw: map[string]any{"mpg": "NaN"}, wantField: "mpg"},
		{name: "negative top k", raw: map[string]any{"top_k": -1.0}, wantField: "top_k"},
		{name: "numeric mode", raw: map[string]any{"mode": 1.0}, wantField: "mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidQueryValue)

			var fieldErr *common.FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}

func TestParseQuery_UnknownMode(t *testing.T) {
	_, err := ParseQuery(map[string]any{"mode": "fastest"})
	assert.ErrorIs(t, err, common.ErrInvalidMode)
}

func TestParseQueryStrings(t *testing.T) {
	q, err := ParseQueryStrings(map[string]string{
		"year":         "2020",
		"price":        "21000",
		"transmission": "",
		"mode":         "price",
	})
	require.NoError(t, err)
	assert.Equal(t, 2020, *q.Year)
	assert.Equal(t, 21000.0, *q.Price)
	assert.Nil(t, q.Transmission)
	assert.Equal(t, ModeExhaustivePrice, q.Mode)

	_, err = ParseQueryStrings(map[string]string{"price": "not-a-number"})
	assert.ErrorIs(t, err, common.ErrInvalidQueryValue)
}

func TestParseRankMode(t *testing.T) {
	tests := []struct {
		in      string
		want    RankMode
		wantErr bool
	}{
		{in: "", want: ModeRelevance},
		{in: "relevance", want: ModeRelevance},
		{in: " Relevance ", want: ModeRelevance},
		{in: "exhaustive-price", want: ModeExhaustivePrice},
		{in: "price", want: ModeExhaustivePrice},
		{in: "cheapest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRankMode(tt.in, ModeRelevance)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuery_Fields(t *testing.T) {
	year := 2020
	price := 21000.5
	fuel := "Hybrid"

	fields := Query{Year: &year, Price: &price, FuelType: &fuel}.Fields()

	assert.Equal(t, map[string]string{
		"year":     "2020",
		"price":    "21000.5",
		"fuelType": "Hybrid",
	}, fields)
}
