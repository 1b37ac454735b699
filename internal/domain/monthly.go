package domain

// MonthlyTotal sums a country's weekly figures over one calendar month.
type MonthlyTotal struct {
	Country string
	Month   Month
	Weeks   int
	Cases   float64
	Deaths  float64
	Peak    bool
}

// MonthlyTotals buckets rows prepared by [Prepare] by country and month.
// Missing weekly values add nothing. Each country's month with the most cases
// is flagged as its peak; the first such month wins ties.
func MonthlyTotals(rows []Row) []MonthlyTotal {
	var out []MonthlyTotal
	for i := range rows {
		r := &rows[i]
		n := len(out)
		if n == 0 || out[n-1].Country != r.Country || out[n-1].Month != r.Month {
			out = append(out, MonthlyTotal{Country: r.Country, Month: r.Month})
			n++
		}
		t := &out[n-1]
		t.Weeks++
		if !IsMissing(r.WeeklyNewCases) {
			t.Cases += r.WeeklyNewCases
		}
		if !IsMissing(r.WeeklyNewDeaths) {
			t.Deaths += r.WeeklyNewDeaths
		}
	}

	peak := make(map[string]int)
	for i := range out {
		j, ok := peak[out[i].Country]
		if !ok || out[i].Cases > out[j].Cases {
			peak[out[i].Country] = i
		}
	}
	for _, i := range peak {
		out[i].Peak = true
	}
	return out
}
