package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/covid-focus-report/internal/domain"
)

// barPanel is one horizontal bar chart built from the latest snapshot.
type barPanel struct {
	Title  string
	XLabel string
	Metric domain.Metric
	Color  color.RGBA
	Label  func(v float64) string
}

// BarRow is one bar of a ranking panel, bottom to top.
type BarRow struct {
	Country string
	Value   float64
	Label   string
}

// barRows drops countries with a missing value and orders the rest ascending.
func barRows(snap domain.Snapshot, m domain.Metric, label func(float64) string) []BarRow {
	ranked := snap.Ranking(m)
	out := make([]BarRow, len(ranked))
	for i, r := range ranked {
		out[i] = BarRow{Country: r.Country, Value: r.Value, Label: label(r.Value)}
	}
	return out
}

func (b barPanel) build(t Theme, snap domain.Snapshot, barWidth vg.Length) (*plot.Plot, error) {
	p := newPlot(t, b.Title, b.XLabel, "")
	rows := barRows(snap, b.Metric, b.Label)
	if len(rows) == 0 {
		return p, nil
	}

	values := make(plotter.Values, len(rows))
	names := make([]string, len(rows))
	xys := make(plotter.XYs, len(rows))
	labels := make([]string, len(rows))
	var top float64
	for i, r := range rows {
		values[i] = r.Value
		names[i] = r.Country
		xys[i] = plotter.XY{X: r.Value, Y: float64(i)}
		labels[i] = r.Label
		top = max(top, r.Value)
	}

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, fmt.Errorf("bars: %w", err)
	}
	bars.Horizontal = true
	bars.Color = b.Color
	bars.LineStyle.Color = color.White
	p.Add(bars)

	valueLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("bar labels: %w", err)
	}
	valueLabels.Offset = vg.Point{X: vg.Points(4)}
	for i := range valueLabels.TextStyle {
		valueLabels.TextStyle[i].YAlign = draw.YCenter
		valueLabels.TextStyle[i].Font.Size = vg.Points(9)
	}
	p.Add(valueLabels)

	p.NominalY(names...)
	p.X.Min = 0
	// Leave room for the value labels right of the longest bar.
	p.X.Max = top * 1.18
	if top <= 0 {
		p.X.Max = 1
	}
	return p, nil
}

// Comparison renders cases and deaths per million as side-by-side bar charts.
type Comparison struct {
	theme Theme
}

// NewComparison creates the population-adjusted comparison renderer.
func NewComparison(t Theme) *Comparison {
	return &Comparison{theme: t}
}

func (r *Comparison) Filename() string    { return "2_country_comparison.png" }
func (r *Comparison) Description() string { return "Population-adjusted country comparison" }

// Panels returns the bar rows of both panels, for inspection.
func (r *Comparison) Panels(rep domain.Report) (casesPerMillion, deathsPerMillion []BarRow) {
	ps := r.panels()
	return barRows(rep.Latest, ps[0].Metric, ps[0].Label), barRows(rep.Latest, ps[1].Metric, ps[1].Label)
}

func (r *Comparison) panels() []barPanel {
	grouped := func(v float64) string { return printer.Sprintf("%.0f", v) }
	return []barPanel{
		{
			Title:  "Total Cases per Million",
			XLabel: "Per Million Population",
			Metric: domain.CasesPerMillion,
			Color:  r.theme.paletteAt(0),
			Label:  grouped,
		},
		{
			Title:  "Total Deaths per Million",
			XLabel: "Per Million Population",
			Metric: domain.DeathsPerMillion,
			Color:  r.theme.paletteAt(1),
			Label:  grouped,
		},
	}
}

// Render draws both panels into w.
func (r *Comparison) Render(w io.Writer, rep domain.Report) error {
	ps := r.panels()
	row := make([]*plot.Plot, len(ps))
	for i, b := range ps {
		p, err := b.build(r.theme, rep.Latest, vg.Points(28))
		if err != nil {
			return fmt.Errorf("%s: %w", b.Title, err)
		}
		p.X.Tick.Marker = groupedTicks
		row[i] = p
	}
	return writePNG(w, r.theme, 14*vg.Inch, 6*vg.Inch, [][]*plot.Plot{row})
}

// FatalityRate renders the latest case fatality rate per country.
type FatalityRate struct {
	theme Theme
}

// NewFatalityRate creates the case fatality rate renderer.
func NewFatalityRate(t Theme) *FatalityRate {
	return &FatalityRate{theme: t}
}

func (r *FatalityRate) Filename() string    { return "4_case_fatality_rate.png" }
func (r *FatalityRate) Description() string { return "Case fatality rate" }

// Bars returns the bar rows of the chart, for inspection.
func (r *FatalityRate) Bars(rep domain.Report) []BarRow {
	b := r.panel()
	return barRows(rep.Latest, b.Metric, b.Label)
}

func (r *FatalityRate) panel() barPanel {
	return barPanel{
		Title:  "Case Fatality Rate (CFR) by Country\n(Total Deaths / Total Cases x 100)",
		XLabel: "Case Fatality Rate (%)",
		Metric: domain.CaseFatalityRatePct,
		Color:  r.theme.paletteAt(2),
		Label:  func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
	}
}

// Render draws the chart into w.
func (r *FatalityRate) Render(w io.Writer, rep domain.Report) error {
	b := r.panel()
	p, err := b.build(r.theme, rep.Latest, vg.Points(24))
	if err != nil {
		return fmt.Errorf("%s: %w", b.Title, err)
	}
	return writePNG(w, r.theme, 10*vg.Inch, 5*vg.Inch, [][]*plot.Plot{{p}})
}
