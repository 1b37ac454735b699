package domain

import (
	"math"
	"time"
)

// Missing marks an absent numeric value.
var Missing = math.NaN()

// IsMissing reports whether v is an absent numeric value.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Observation is one source row: a country's figures for the week ending on Date.
type Observation struct {
	Country string
	Date    time.Time

	WeeklyNewCases      float64
	WeeklyNewDeaths     float64
	CumulativeCases     float64
	CumulativeDeaths    float64
	CasesPerMillion     float64
	DeathsPerMillion    float64
	CaseFatalityRatePct float64
	VaccinatedPct       float64
	RecoveryRatePct     float64
}

// Metric selects one numeric field of an Observation.
type Metric int

const (
	WeeklyNewCases Metric = iota
	WeeklyNewDeaths
	CumulativeCases
	CumulativeDeaths
	CasesPerMillion
	DeathsPerMillion
	CaseFatalityRatePct
	VaccinatedPct
	RecoveryRatePct
)

// Metrics lists every numeric source field in column order.
var Metrics = []Metric{
	WeeklyNewCases,
	WeeklyNewDeaths,
	CumulativeCases,
	CumulativeDeaths,
	CasesPerMillion,
	DeathsPerMillion,
	CaseFatalityRatePct,
	VaccinatedPct,
	RecoveryRatePct,
}

var metricColumns = [...]string{
	WeeklyNewCases:      "Weekly_New_Cases",
	WeeklyNewDeaths:     "Weekly_New_Deaths",
	CumulativeCases:     "Cumulative_Cases",
	CumulativeDeaths:    "Cumulative_Deaths",
	CasesPerMillion:     "Cases_Per_Million",
	DeathsPerMillion:    "Deaths_Per_Million",
	CaseFatalityRatePct: "Case_Fatality_Rate_Pct",
	VaccinatedPct:       "Vaccinated_Pct",
	RecoveryRatePct:     "Recovery_Rate_Pct",
}

// Column returns the source column header of the metric.
func (m Metric) Column() string {
	return metricColumns[m]
}

// Value returns the observation's value for m.
func (o Observation) Value(m Metric) float64 {
	switch m {
	case WeeklyNewCases:
		return o.WeeklyNewCases
	case WeeklyNewDeaths:
		return o.WeeklyNewDeaths
	case CumulativeCases:
		return o.CumulativeCases
	case CumulativeDeaths:
		return o.CumulativeDeaths
	case CasesPerMillion:
		return o.CasesPerMillion
	case DeathsPerMillion:
		return o.DeathsPerMillion
	case CaseFatalityRatePct:
		return o.CaseFatalityRatePct
	case VaccinatedPct:
		return o.VaccinatedPct
	case RecoveryRatePct:
		return o.RecoveryRatePct
	default:
		return Missing
	}
}

// SetValue stores v into the field selected by m.
func (o *Observation) SetValue(m Metric, v float64) {
	switch m {
	case WeeklyNewCases:
		o.WeeklyNewCases = v
	case WeeklyNewDeaths:
		o.WeeklyNewDeaths = v
	case CumulativeCases:
		o.CumulativeCases = v
	case CumulativeDeaths:
		o.CumulativeDeaths = v
	case CasesPerMillion:
		o.CasesPerMillion = v
	case DeathsPerMillion:
		o.DeathsPerMillion = v
	case CaseFatalityRatePct:
		o.CaseFatalityRatePct = v
	case VaccinatedPct:
		o.VaccinatedPct = v
	case RecoveryRatePct:
		o.RecoveryRatePct = v
	}
}

// DatasetStats summarizes a full, unfiltered load.
type DatasetStats struct {
	Rows      int
	Countries int
	FirstDate time.Time
	LastDate  time.Time
}

// Describe counts rows and distinct countries and finds the date range.
func Describe(obs []Observation) DatasetStats {
	stats := DatasetStats{Rows: len(obs)}
	seen := make(map[string]struct{})
	for i := range obs {
		seen[obs[i].Country] = struct{}{}
		d := obs[i].Date
		if stats.FirstDate.IsZero() || d.Before(stats.FirstDate) {
			stats.FirstDate = d
		}
		if d.After(stats.LastDate) {
			stats.LastDate = d
		}
	}
	stats.Countries = len(seen)
	return stats
}
