package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Month is a calendar month bucket.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month bucket containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// String formats the bucket as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Row is a focus-country observation augmented with derived fields.
type Row struct {
	Observation

	WeeklyNewCasesAvg  float64
	WeeklyNewDeathsAvg float64
	Month              Month
}

// Prepare narrows obs to the focus countries, stable-sorts the result by
// (Country, Date), and derives the trailing means and month bucket. obs is
// not modified.
func Prepare(obs []Observation, focus FocusSet, window int) []Row {
	rows := make([]Row, 0, len(obs))
	for i := range obs {
		if focus.Contains(obs[i].Country) {
			rows = append(rows, Row{Observation: obs[i]})
		}
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := strings.Compare(a.Country, b.Country); c != 0 {
			return c
		}
		return a.Date.Compare(b.Date)
	})

	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && rows[end].Country == rows[start].Country {
			end++
		}
		group := rows[start:end]
		cases := RollingMean(columnOf(group, WeeklyNewCases), window)
		deaths := RollingMean(columnOf(group, WeeklyNewDeaths), window)
		for i := range group {
			group[i].WeeklyNewCasesAvg = cases[i]
			group[i].WeeklyNewDeathsAvg = deaths[i]
			group[i].Month = MonthOf(group[i].Date)
		}
		start = end
	}

	return rows
}

func columnOf(rows []Row, m Metric) []float64 {
	out := make([]float64, len(rows))
	for i := range rows {
		out[i] = rows[i].Value(m)
	}
	return out
}

// RollingMean returns the trailing mean of values over the current and up to
// window-1 preceding entries. Leading entries average whatever is available,
// and missing values are skipped. The result is missing only when every value
// in the window is missing. It runs in a single pass with a running sum.
func RollingMean(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	var sum float64
	var n int
	for i, v := range values {
		if !IsMissing(v) {
			sum += v
			n++
		}
		if i >= window {
			if old := values[i-window]; !IsMissing(old) {
				sum -= old
				n--
			}
		}
		if n == 0 {
			out[i] = Missing
			// Reset drift once the window is empty.
			sum = 0
			continue
		}
		out[i] = sum / float64(n)
	}
	return out
}

// MissingValues counts missing cells across the source fields and the two
// rolling means of the prepared rows.
func MissingValues(rows []Row) int {
	var n int
	for i := range rows {
		for _, m := range Metrics {
			if IsMissing(rows[i].Value(m)) {
				n++
			}
		}
		if IsMissing(rows[i].WeeklyNewCasesAvg) {
			n++
		}
		if IsMissing(rows[i].WeeklyNewDeathsAvg) {
			n++
		}
	}
	return n
}

// SeriesPoint is one dated value of a single country's series.
type SeriesPoint struct {
	Date  time.Time
	Value float64
}

// Series returns the country's non-missing values chosen by pick, in date order.
func Series(rows []Row, country string, pick func(Row) float64) []SeriesPoint {
	var out []SeriesPoint
	for i := range rows {
		if rows[i].Country != country {
			continue
		}
		v := pick(rows[i])
		if IsMissing(v) {
			continue
		}
		out = append(out, SeriesPoint{Date: rows[i].Date, Value: v})
	}
	return out
}
