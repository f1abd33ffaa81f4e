package model

import (
	"errors"
	"math"
)

// Amount errors.
var (
	ErrNotFinite = errors.New("not a finite number")
	ErrNegative  = errors.New("must not be negative")
)

// Catalog column names. Together they form the schema every catalog source
// must provide.
const (
	ColumnModel          = "model"
	ColumnYear           = "year"
	ColumnPrice          = "price"
	ColumnTransmission   = "transmission"
	ColumnMileage        = "mileage"
	ColumnFuelType       = "fuelType"
	ColumnMPG            = "mpg"
	ColumnFinanceMonthly = "finance_monthly"
	ColumnLeaseMonthly   = "lease_monthly"
	ColumnHorsepower     = "horsepower"
)

// CatalogColumns lists the catalog schema in canonical order.
var CatalogColumns = []string{
	ColumnModel,
	ColumnYear,
	ColumnPrice,
	ColumnTransmission,
	ColumnMileage,
	ColumnFuelType,
	ColumnMPG,
	ColumnFinanceMonthly,
	ColumnLeaseMonthly,
	ColumnHorsepower,
}

// Vehicle is one row of the catalog.
type Vehicle struct {
	Model          string  `json:"model"`
	Transmission   string  `json:"transmission"`
	FuelType       string  `json:"fuelType"`
	Price          float64 `json:"price"`
	Mileage        float64 `json:"mileage"`
	MPG            float64 `json:"mpg"`
	FinanceMonthly float64 `json:"finance_monthly"`
	LeaseMonthly   float64 `json:"lease_monthly"`
	Horsepower     float64 `json:"horsepower"`
	Year           int     `json:"year"`
}

// Amount is one numeric catalog column of a vehicle.
type Amount struct {
	Value  *float64
	Column string
}

// Amounts returns the numeric columns of v in catalog order. Values point
// into v.
func (v *Vehicle) Amounts() []Amount {
	return []Amount{
		{&v.Price, ColumnPrice},
		{&v.Mileage, ColumnMileage},
		{&v.MPG, ColumnMPG},
		{&v.FinanceMonthly, ColumnFinanceMonthly},
		{&v.LeaseMonthly, ColumnLeaseMonthly},
		{&v.Horsepower, ColumnHorsepower},
	}
}

// CheckAmount rejects values that cannot take part in ordering or
// thresholds: NaN, infinities and negatives.
func CheckAmount(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrNotFinite
	}
	if value < 0 {
		return ErrNegative
	}
	return nil
}
