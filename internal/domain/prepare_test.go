package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFocus = NewFocusSet("France", "Italy", "Russia", "South Africa", "Australia")

func week(n int) time.Time {
	return time.Date(2021, time.January, 3, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*n)
}

func obs(country string, date time.Time, cases, deaths float64) Observation {
	return Observation{
		Country:             country,
		Date:                date,
		WeeklyNewCases:      cases,
		WeeklyNewDeaths:     deaths,
		CumulativeCases:     cases * 10,
		CumulativeDeaths:    deaths * 10,
		CasesPerMillion:     cases,
		DeathsPerMillion:    deaths,
		CaseFatalityRatePct: 1.5,
		VaccinatedPct:       50,
		RecoveryRatePct:     97,
	}
}

func TestRollingMean_TenRowSeries(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	got := RollingMean(values, 4)

	require.Len(t, got, len(values))
	for k := range values {
		lo := max(0, k-3)
		var sum float64
		for _, v := range values[lo : k+1] {
			sum += v
		}
		want := sum / float64(k+1-lo)
		assert.InDelta(t, want, got[k], 1e-9, "row %d", k+1)
	}
	assert.InDelta(t, 10.0, got[0], 1e-9)
	assert.InDelta(t, 15.0, got[1], 1e-9)
	assert.InDelta(t, 20.0, got[2], 1e-9)
	assert.InDelta(t, 25.0, got[3], 1e-9)
	assert.InDelta(t, 85.0, got[9], 1e-9)
}

func TestRollingMean_SkipsMissing(t *testing.T) {
	values := []float64{4, Missing, 8, Missing, Missing, Missing, Missing, 6}
	got := RollingMean(values, 4)

	assert.InDelta(t, 4.0, got[0], 1e-9)
	assert.InDelta(t, 4.0, got[1], 1e-9)
	assert.InDelta(t, 6.0, got[2], 1e-9)
	assert.InDelta(t, 6.0, got[3], 1e-9)
	assert.InDelta(t, 8.0, got[4], 1e-9)
	assert.InDelta(t, 8.0, got[5], 1e-9)
	assert.True(t, IsMissing(got[6]), "window of four missing values")
	assert.InDelta(t, 6.0, got[7], 1e-9)
}

func TestRollingMean_WindowOfOne(t *testing.T) {
	got := RollingMean([]float64{3, 5, 7}, 1)
	assert.Equal(t, []float64{3, 5, 7}, got)
}

func TestRollingMean_Empty(t *testing.T) {
	assert.Empty(t, RollingMean(nil, 4))
}

func TestPrepare_FiltersToFocusCountries(t *testing.T) {
	in := []Observation{
		obs("Germany", week(0), 1, 1),
		obs("France", week(0), 2, 1),
		obs("Brazil", week(0), 3, 1),
		obs("Australia", week(0), 4, 1),
		obs("france", week(1), 5, 1),
	}

	rows := Prepare(in, testFocus, 4)

	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.True(t, testFocus.Contains(r.Country), "unexpected country %q", r.Country)
	}
}

func TestPrepare_SortsByCountryThenDate(t *testing.T) {
	in := []Observation{
		obs("Italy", week(2), 3, 0),
		obs("France", week(1), 2, 0),
		obs("Italy", week(0), 1, 0),
		obs("France", week(0), 1, 0),
		obs("Australia", week(5), 9, 0),
	}

	rows := Prepare(in, testFocus, 4)

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Country + "@" + r.Date.Format("2006-01-02")
	}
	assert.Equal(t, []string{
		"Australia@" + week(5).Format("2006-01-02"),
		"France@" + week(0).Format("2006-01-02"),
		"France@" + week(1).Format("2006-01-02"),
		"Italy@" + week(0).Format("2006-01-02"),
		"Italy@" + week(2).Format("2006-01-02"),
	}, got)
}

func TestPrepare_RollingMeanIsPerCountry(t *testing.T) {
	var in []Observation
	for i := range 6 {
		in = append(in,
			obs("France", week(i), float64(10*(i+1)), float64(i+1)),
			obs("Italy", week(i), 1000, 100),
		)
	}

	rows := Prepare(in, testFocus, 4)
	require.Len(t, rows, 12)

	france := rows[:6]
	wantCases := []float64{10, 15, 20, 25, 35, 45}
	wantDeaths := []float64{1, 1.5, 2, 2.5, 3.5, 4.5}
	for i, r := range france {
		require.Equal(t, "France", r.Country)
		assert.InDelta(t, wantCases[i], r.WeeklyNewCasesAvg, 1e-9, "cases row %d", i)
		assert.InDelta(t, wantDeaths[i], r.WeeklyNewDeathsAvg, 1e-9, "deaths row %d", i)
	}
	for _, r := range rows[6:] {
		require.Equal(t, "Italy", r.Country)
		assert.InDelta(t, 1000.0, r.WeeklyNewCasesAvg, 1e-9)
		assert.InDelta(t, 100.0, r.WeeklyNewDeathsAvg, 1e-9)
	}
}

func TestPrepare_MonthBucket(t *testing.T) {
	in := []Observation{obs("Russia", time.Date(2022, time.March, 27, 0, 0, 0, 0, time.UTC), 1, 1)}
	rows := Prepare(in, testFocus, 4)

	require.Len(t, rows, 1)
	assert.Equal(t, Month{Year: 2022, Month: time.March}, rows[0].Month)
	assert.Equal(t, "2022-03", rows[0].Month.String())
}

func TestPrepare_DoesNotMutateInput(t *testing.T) {
	in := []Observation{
		obs("Italy", week(1), 2, 0),
		obs("Italy", week(0), 1, 0),
	}
	orig := append([]Observation(nil), in...)

	_ = Prepare(in, testFocus, 4)

	assert.Equal(t, orig, in)
}

func TestPrepare_EmptyIntersection(t *testing.T) {
	rows := Prepare([]Observation{obs("Chile", week(0), 1, 1)}, testFocus, 4)
	assert.Empty(t, rows)
}

func TestMissingValues(t *testing.T) {
	a := obs("France", week(0), 1, 1)
	a.VaccinatedPct = Missing
	b := obs("France", week(1), 1, 2)
	b.WeeklyNewCases = Missing
	b.RecoveryRatePct = Missing

	rows := Prepare([]Observation{a, b}, testFocus, 4)

	// a: vaccinated. b: weekly cases, recovery. Averages are all present.
	assert.Equal(t, 3, MissingValues(rows))
}

func TestSeries_DropsMissingAndOtherCountries(t *testing.T) {
	a := obs("France", week(0), 1, 1)
	b := obs("France", week(1), 1, 1)
	b.VaccinatedPct = Missing
	c := obs("France", week(2), 1, 1)
	c.VaccinatedPct = 61
	d := obs("Italy", week(0), 1, 1)

	rows := Prepare([]Observation{c, d, b, a}, testFocus, 4)
	got := Series(rows, "France", func(r Row) float64 { return r.VaccinatedPct })

	assert.Equal(t, []SeriesPoint{
		{Date: week(0), Value: 50},
		{Date: week(2), Value: 61},
	}, got)
}

func TestDescribe(t *testing.T) {
	in := []Observation{
		obs("Chile", week(3), 1, 1),
		obs("France", week(1), 1, 1),
		obs("Chile", week(0), 1, 1),
	}
	stats := Describe(in)

	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 2, stats.Countries)
	assert.Equal(t, week(0), stats.FirstDate)
	assert.Equal(t, week(3), stats.LastDate)
}

func TestFocusSet(t *testing.T) {
	f := NewFocusSet("France", "Italy", "France")

	assert.Equal(t, []string{"France", "Italy"}, f.Names())
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, 1, f.Index("Italy"))
	assert.Equal(t, -1, f.Index("Spain"))
	assert.False(t, f.Contains("Spain"))

	names := f.Names()
	names[0] = "Spain"
	assert.Equal(t, "France", f.Names()[0])
}
