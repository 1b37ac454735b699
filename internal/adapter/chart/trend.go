package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/covid-focus-report/internal/domain"
)

var (
	panelBackground = color.RGBA{R: 0xF9, G: 0xFB, B: 0xFC, A: 255}
	targetGray      = color.RGBA{R: 128, G: 128, B: 128, A: 180}
	benchmarkGrn    = color.RGBA{R: 0, G: 128, B: 0, A: 153}
	targetBandGrn   = color.NRGBA{R: 0, G: 128, B: 0, A: 13}
)

// Vaccination renders the share of population vaccinated over time against
// the herd immunity target.
type Vaccination struct {
	theme Theme
}

// NewVaccination creates the vaccination progress renderer.
func NewVaccination(t Theme) *Vaccination {
	return &Vaccination{theme: t}
}

func (r *Vaccination) Filename() string    { return "3_vaccination_progress.png" }
func (r *Vaccination) Description() string { return "Vaccination progress" }

// Render draws the chart into w.
func (r *Vaccination) Render(w io.Writer, rep domain.Report) error {
	t := r.theme
	p := newPlot(t,
		"Vaccination Rollout Progress: % Population Vaccinated (At Least 1 Dose)",
		"Date", "% Population Vaccinated")

	pick := func(row domain.Row) float64 { return row.VaccinatedPct }
	span := vaccinationSpan(rep, pick)

	// The band goes first so the country lines draw over it.
	band, err := plotter.NewPolygon(plotter.XYs{
		{X: span[0], Y: t.VaccinationBand[0]},
		{X: span[1], Y: t.VaccinationBand[0]},
		{X: span[1], Y: t.VaccinationBand[1]},
		{X: span[0], Y: t.VaccinationBand[1]},
	})
	if err != nil {
		return fmt.Errorf("target band: %w", err)
	}
	band.Color = targetBandGrn
	band.LineStyle.Width = 0
	p.Add(band)

	if _, err := countryLines(p, t, rep, vg.Points(2), pick); err != nil {
		return err
	}
	label := fmt.Sprintf("%g%% Herd Immunity Target", t.VaccinationTarget)
	if err := referenceLine(p, t.VaccinationTarget, span, targetGray, label); err != nil {
		return err
	}

	timeAxis(p)
	p.Legend.Top = true
	p.Y.Min, p.Y.Max = t.VaccinationYRange[0], t.VaccinationYRange[1]
	return writePNG(w, t, 14*vg.Inch, 6*vg.Inch, [][]*plot.Plot{{p}})
}

func vaccinationSpan(rep domain.Report, pick func(domain.Row) float64) [2]float64 {
	span := [2]float64{}
	found := false
	for i := range rep.Rows {
		if !rep.Focus.Contains(rep.Rows[i].Country) || domain.IsMissing(pick(rep.Rows[i])) {
			continue
		}
		x := float64(rep.Rows[i].Date.Unix())
		if !found {
			span = [2]float64{x, x}
			found = true
			continue
		}
		span[0] = min(span[0], x)
		span[1] = max(span[1], x)
	}
	if !found {
		return rowSpan(rep.Rows)
	}
	return span
}

// Recovery renders the recovery rate trend against a fixed benchmark.
type Recovery struct {
	theme Theme
}

// NewRecovery creates the recovery rate trend renderer.
func NewRecovery(t Theme) *Recovery {
	return &Recovery{theme: t}
}

func (r *Recovery) Filename() string    { return "5_recovery_rate_trend.png" }
func (r *Recovery) Description() string { return "Recovery rate trend" }

// Render draws the chart into w.
func (r *Recovery) Render(w io.Writer, rep domain.Report) error {
	t := r.theme
	p := newPlot(t, "Recovery Rate Trend Over Time by Country", "Date", "Recovery Rate (%)")

	span, err := countryLines(p, t, rep, vg.Points(2), func(row domain.Row) float64 { return row.RecoveryRatePct })
	if err != nil {
		return err
	}
	label := fmt.Sprintf("%g%% Recovery Benchmark", t.RecoveryBenchmark)
	if err := referenceLine(p, t.RecoveryBenchmark, span, benchmarkGrn, label); err != nil {
		return err
	}

	timeAxis(p)
	p.Legend.Top = true
	p.Y.Min, p.Y.Max = t.RecoveryYRange[0], t.RecoveryYRange[1]
	return writePNG(w, t, 14*vg.Inch, 6*vg.Inch, [][]*plot.Plot{{p}})
}
