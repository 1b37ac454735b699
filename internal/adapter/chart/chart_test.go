package chart

import (
	"bytes"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/covid-focus-report/internal/config"
	"github.com/couchcryptid/covid-focus-report/internal/domain"
)

type renderer interface {
	Filename() string
	Render(w io.Writer, rep domain.Report) error
}

func testTheme(t *testing.T) Theme {
	t.Helper()
	a := config.DefaultAnalysis()
	a.DPI = 40
	th, err := NewTheme(a)
	require.NoError(t, err)
	return th
}

func point(country string, week int, cpm, dpm, cfr, vax, rec float64) domain.Observation {
	return domain.Observation{
		Country:             country,
		Date:                time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*week),
		WeeklyNewCases:      float64(1000 * (week + 1)),
		WeeklyNewDeaths:     float64(10 * (week + 1)),
		CumulativeCases:     float64(5000 * (week + 1)),
		CumulativeDeaths:    float64(50 * (week + 1)),
		CasesPerMillion:     cpm,
		DeathsPerMillion:    dpm,
		CaseFatalityRatePct: cfr,
		VaccinatedPct:       vax,
		RecoveryRatePct:     rec,
	}
}

// twoCountryReport has France and Italy over three weeks plus a non-focus row.
func twoCountryReport() domain.Report {
	focus := domain.NewFocusSet("France", "Italy", "Russia", "South Africa", "Australia")
	in := []domain.Observation{
		point("France", 0, 1000, 20, 1.5, 10, 90),
		point("France", 1, 2000, 30, 1.8, 20, 91),
		point("France", 2, 3000, 40, 2.25, 30, 92),
		point("Italy", 0, 5000, 80, 3.0, 5, 85),
		point("Italy", 1, 6000, 90, 3.1, 15, 86),
		point("Italy", 2, 1500, 95, 0.75, 25, 88),
		point("Germany", 2, 99999, 999, 9.9, 99, 99),
	}
	return domain.BuildReport(in, focus, 4)
}

func TestRenderers_ProducePNG(t *testing.T) {
	th := testTheme(t)
	rep := twoCountryReport()

	tests := []struct {
		r        renderer
		filename string
	}{
		{NewTimeSeries(th), "1_cases_deaths_over_time.png"},
		{NewComparison(th), "2_country_comparison.png"},
		{NewVaccination(th), "3_vaccination_progress.png"},
		{NewFatalityRate(th), "4_case_fatality_rate.png"},
		{NewRecovery(th), "5_recovery_rate_trend.png"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.filename, tt.r.Filename())

			var buf bytes.Buffer
			require.NoError(t, tt.r.Render(&buf, rep))

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.Positive(t, img.Bounds().Dx())
			assert.Positive(t, img.Bounds().Dy())
		})
	}
}

func TestRenderers_EmptyReport(t *testing.T) {
	th := testTheme(t)
	rep := domain.BuildReport(nil, domain.NewFocusSet("France"), 4)

	for _, r := range []renderer{
		NewTimeSeries(th), NewComparison(th), NewVaccination(th), NewFatalityRate(th), NewRecovery(th),
	} {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, rep), r.Filename())
		_, err := png.Decode(&buf)
		require.NoError(t, err, r.Filename())
	}
}

func TestTimeSeries_CanvasSize(t *testing.T) {
	a := config.DefaultAnalysis()
	a.DPI = 10
	th, err := NewTheme(a)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTimeSeries(th).Render(&buf, twoCountryReport()))
	img, err := png.Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, 140, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestComparison_BarsAscendingFromLatest(t *testing.T) {
	cases, deaths := NewComparison(testTheme(t)).Panels(twoCountryReport())

	assert.Equal(t, []BarRow{
		{Country: "Italy", Value: 1500, Label: "1,500"},
		{Country: "France", Value: 3000, Label: "3,000"},
	}, cases)
	assert.Equal(t, []BarRow{
		{Country: "France", Value: 40, Label: "40"},
		{Country: "Italy", Value: 95, Label: "95"},
	}, deaths)
}

func TestFatalityRate_Labels(t *testing.T) {
	bars := NewFatalityRate(testTheme(t)).Bars(twoCountryReport())

	assert.Equal(t, []BarRow{
		{Country: "Italy", Value: 0.75, Label: "0.75%"},
		{Country: "France", Value: 2.25, Label: "2.25%"},
	}, bars)
}

func TestFatalityRate_SkipsMissing(t *testing.T) {
	focus := domain.NewFocusSet("France", "Italy")
	in := []domain.Observation{
		point("France", 0, 1, 1, domain.Missing, 1, 1),
		point("Italy", 0, 1, 1, 1.25, 1, 1),
	}
	bars := NewFatalityRate(testTheme(t)).Bars(domain.BuildReport(in, focus, 4))

	require.Len(t, bars, 1)
	assert.Equal(t, "Italy", bars[0].Country)
}

func TestTheme_ColorFollowsFocusPosition(t *testing.T) {
	th := testTheme(t)
	focus := domain.NewFocusSet("France", "Italy", "Russia", "South Africa", "Australia")

	assert.Equal(t, color.RGBA{R: 0x2C, G: 0x7B, B: 0xB6, A: 255}, th.ColorFor(focus, "France"))
	assert.Equal(t, color.RGBA{R: 0x7B, G: 0x2D, B: 0x8B, A: 255}, th.ColorFor(focus, "Australia"))
	assert.Equal(t, color.RGBA{A: 255}, th.ColorFor(focus, "Germany"))
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#D7191C", want: color.RGBA{R: 0xD7, G: 0x19, B: 0x1C, A: 255}},
		{in: "1a9641", want: color.RGBA{R: 0x1A, G: 0x96, B: 0x41, A: 255}},
		{in: "#fff", want: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: "#12345", wantErr: true},
		{in: "#GGGGGG", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHex(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTheme_InvalidPalette(t *testing.T) {
	a := config.DefaultAnalysis()
	a.Palette[3] = "orange"

	_, err := NewTheme(a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "palette[3]")
}

func TestNewTheme_Background(t *testing.T) {
	th := testTheme(t)
	assert.Equal(t, color.RGBA{R: 0xF9, G: 0xFB, B: 0xFC, A: 255}, th.Background)
}
