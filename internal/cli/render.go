package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/carpicker/internal/model"
)

// RenderResult writes a human-readable view of r to w.
func RenderResult(w io.Writer, r *model.Result) error {
	if r.Empty() {
		_, err := fmt.Fprintln(w, InfoStyle.Render(model.NoMatchesMessage))
		return err
	}

	if r.BestMatch != nil {
		if _, err := fmt.Fprintln(w, RenderCard(CarIcon+" Best match", describeMatch(*r.BestMatch))); err != nil {
			return fmt.Errorf("failed to write best match: %w", err)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	title := fmt.Sprintf("Top %d of %d matching models", len(r.Matches), r.TotalSurvivors)
	if r.Mode == model.ModeExhaustivePrice {
		title = fmt.Sprintf("%d matching models, cheapest first", r.TotalSurvivors)
	}
	if _, err := fmt.Fprintln(w, FormatTitle(title)); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}

	return renderTable(w, r.Matches)
}

func renderTable(out io.Writer, matches []model.Match) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	columns := []string{"#", "Model", "Year", "Price", "Mileage", "MPG", "HP", "Transmission", "Fuel", "Finance", "Lease", "Score"}
	headers := make([]string, len(columns))
	separators := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = HeaderStyle.Render(c)
		separators[i] = strings.Repeat("─", max(len(c), 3))
	}

	if _, err := fmt.Fprintln(w, strings.Join(headers, "\t")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintln(w, strings.Join(separators, "\t")); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for i, m := range matches {
		d := m.Display
		score := d.Score
		if score == "" {
			score = "-"
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			d.Model,
			d.Year,
			d.Price,
			d.Mileage,
			d.MPG,
			d.Horsepower,
			d.Transmission,
			d.FuelType,
			d.FinanceMonthly,
			d.LeaseMonthly,
			score); err != nil {
			return fmt.Errorf("failed to write match row: %w", err)
		}
	}

	return w.Flush()
}

func describeMatch(m model.Match) string {
	d := m.Display
	lines := []string{
		ModelStyle.Render(d.Model) + " " + SubtleStyle.Render(d.Year),
		d.Price + " · " + d.Mileage,
		d.Transmission + " · " + d.FuelType + " · " + d.MPG + " · " + d.Horsepower,
		"Finance " + d.FinanceMonthly + " · Lease " + d.LeaseMonthly,
	}
	if m.Score != nil {
		lines = append(lines, "Similarity "+ScoreStyle(*m.Score).Render(d.Score))
	}
	return strings.Join(lines, "\n")
}
