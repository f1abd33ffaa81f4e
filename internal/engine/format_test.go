package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/carpicker/internal/model"
)

func TestFormat(t *testing.T) {
	v := model.Vehicle{
		Model: "Land Cruiser", Year: 2021, Price: 85432.75, Transmission: " Automatic ",
		Mileage: 1234567.9, FuelType: "Diesel\t", MPG: 17.24,
		FinanceMonthly: 1349.5, LeaseMonthly: 999.999, Horsepower: 409.6,
	}

	m := Format(v, ptr(87.46))

	assert.Equal(t, v, m.Vehicle)
	assert.Equal(t, model.Display{
		Model:          "Land Cruiser",
		Year:           "2021",
		Price:          "$85,432",
		MPG:            "17.2 MPG",
		Horsepower:     "409 HP",
		Transmission:   "Automatic",
		Mileage:        "1,234,567 miles",
		FuelType:       "Diesel",
		FinanceMonthly: "$1349.50/mo",
		LeaseMonthly:   "$1000.00/mo",
		Score:          "87.5%",
	}, m.Display)
	if assert.NotNil(t, m.Score) {
		assert.Equal(t, 87.46, *m.Score)
	}
}

func TestFormat_WithoutScore(t *testing.T) {
	m := Format(camry(), nil)

	assert.Nil(t, m.Score)
	assert.Empty(t, m.Display.Score)
	assert.Equal(t, "$22,000", m.Display.Price)
	assert.Equal(t, "30,000 miles", m.Display.Mileage)
	assert.Equal(t, "32.0 MPG", m.Display.MPG)
	assert.Equal(t, "203 HP", m.Display.Horsepower)
	assert.Equal(t, "$350.00/mo", m.Display.FinanceMonthly)
	assert.Equal(t, "$280.00/mo", m.Display.LeaseMonthly)
}

func TestFormat_ScoreIsCopied(t *testing.T) {
	score := 50.0
	m := Format(camry(), &score)
	score = 10

	assert.Equal(t, 50.0, *m.Score)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "-12.3%", FormatScore(-12.34))
	assert.Equal(t, "0.0%", FormatScore(0))
}
