package chart

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/covid-focus-report/internal/domain"
)

// TimeSeries renders the rolling-average cases and deaths as two stacked
// panels sharing the date axis, one line per focus country.
type TimeSeries struct {
	theme Theme
}

// NewTimeSeries creates the cases/deaths time-series renderer.
func NewTimeSeries(t Theme) *TimeSeries {
	return &TimeSeries{theme: t}
}

func (r *TimeSeries) Filename() string    { return "1_cases_deaths_over_time.png" }
func (r *TimeSeries) Description() string { return "Weekly cases & deaths over time" }

// Render draws both panels into w.
func (r *TimeSeries) Render(w io.Writer, rep domain.Report) error {
	title := "COVID-19: Weekly Cases & Deaths Over Time\n(4-Week Rolling Average | " +
		strings.Join(rep.Focus.Names(), ", ") + ")"

	panels := []struct {
		title string
		label string
		pick  func(domain.Row) float64
	}{
		{title: title, label: "Weekly New Cases", pick: func(row domain.Row) float64 { return row.WeeklyNewCasesAvg }},
		{label: "Weekly New Deaths", pick: func(row domain.Row) float64 { return row.WeeklyNewDeathsAvg }},
	}

	grid := make([][]*plot.Plot, len(panels))
	for i, pn := range panels {
		xLabel := ""
		if i == len(panels)-1 {
			xLabel = "Date"
		}
		p := newPlot(r.theme, pn.title, xLabel, pn.label)
		if _, err := countryLines(p, r.theme, rep, vg.Points(1.8), pn.pick); err != nil {
			return fmt.Errorf("%s panel: %w", pn.label, err)
		}
		timeAxis(p)
		p.Y.Tick.Marker = groupedTicks
		legendTopLeft(p)
		grid[i] = []*plot.Plot{p}
	}

	// Shared x-axis: align both panels to the union of their ranges.
	lo := min(grid[0][0].X.Min, grid[1][0].X.Min)
	hi := max(grid[0][0].X.Max, grid[1][0].X.Max)
	for _, row := range grid {
		row[0].X.Min, row[0].X.Max = lo, hi
	}

	return writePNG(w, r.theme, 14*vg.Inch, 10*vg.Inch, grid)
}
