package engine

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Veraticus/carpicker/internal/model"
)

// Format pairs a vehicle with its score and renders the display strings:
// whole-dollar prices and mileage with thousands separators, monthly
// payments to the cent, and the score as a percentage. Raw values are
// carried through untouched.
func Format(v model.Vehicle, score *float64) model.Match {
	p := message.NewPrinter(language.English)

	m := model.Match{
		Vehicle: v,
		Display: model.Display{
			Model:          v.Model,
			Year:           strconv.Itoa(v.Year),
			Price:          p.Sprintf("$%d", int64(v.Price)),
			MPG:            fmt.Sprintf("%.1f MPG", v.MPG),
			Horsepower:     fmt.Sprintf("%d HP", int64(v.Horsepower)),
			Transmission:   strings.TrimSpace(v.Transmission),
			Mileage:        p.Sprintf("%d miles", int64(v.Mileage)),
			FuelType:       strings.TrimSpace(v.FuelType),
			FinanceMonthly: FormatMonthly(v.FinanceMonthly),
			LeaseMonthly:   FormatMonthly(v.LeaseMonthly),
		},
	}

	if score != nil {
		s := *score
		m.Score = &s
		m.Display.Score = FormatScore(s)
	}

	return m
}

// FormatMonthly renders a monthly payment, e.g. "$350.00/mo".
func FormatMonthly(amount float64) string {
	return fmt.Sprintf("$%.2f/mo", amount)
}

// FormatScore renders a similarity score, e.g. "87.5%".
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score)
}
