package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		value   float64
	}{
		{name: "positive", value: 22000},
		{name: "zero", value: 0},
		{name: "negative", value: -5, wantErr: ErrNegative},
		{name: "NaN", value: math.NaN(), wantErr: ErrNotFinite},
		{name: "positive infinity", value: math.Inf(1), wantErr: ErrNotFinite},
		{name: "negative infinity", value: math.Inf(-1), wantErr: ErrNotFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAmount(tt.value)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVehicle_AmountsFollowCatalogOrder(t *testing.T) {
	v := Vehicle{Price: 1, Mileage: 2, MPG: 3, FinanceMonthly: 4, LeaseMonthly: 5, Horsepower: 6}

	amounts := v.Amounts()
	columns := make([]string, len(amounts))
	for i, a := range amounts {
		columns[i] = a.Column
		assert.InDelta(t, float64(i+1), *a.Value, 1e-9)
	}
	assert.Equal(t, []string{ColumnPrice, ColumnMileage, ColumnMPG, ColumnFinanceMonthly, ColumnLeaseMonthly, ColumnHorsepower}, columns)

	*amounts[0].Value = 99
	assert.InDelta(t, 99.0, v.Price, 1e-9)
}
