package domain

import "slices"

// Snapshot holds the most recent prepared row of each focus country that has
// data, in focus order.
type Snapshot struct {
	rows []Row
}

// Latest takes the last row of every country from rows prepared by [Prepare].
// Countries without rows are absent from the snapshot.
func Latest(rows []Row, focus FocusSet) Snapshot {
	last := make(map[string]int, focus.Len())
	for i := range rows {
		last[rows[i].Country] = i
	}

	out := make([]Row, 0, len(last))
	for _, name := range focus.names {
		if i, ok := last[name]; ok {
			out = append(out, rows[i])
		}
	}
	return Snapshot{rows: out}
}

// Rows returns the snapshot rows in focus order.
func (s Snapshot) Rows() []Row {
	return slices.Clone(s.rows)
}

// Len returns the number of countries in the snapshot.
func (s Snapshot) Len() int {
	return len(s.rows)
}

// Get returns the country's latest row.
func (s Snapshot) Get(country string) (Row, bool) {
	for i := range s.rows {
		if s.rows[i].Country == country {
			return s.rows[i], true
		}
	}
	return Row{}, false
}

// Ranked is one country's value for a ranking chart.
type Ranked struct {
	Country string
	Value   float64
}

// Ranking returns the non-missing values of m in ascending order. Equal values
// keep focus order.
func (s Snapshot) Ranking(m Metric) []Ranked {
	out := make([]Ranked, 0, len(s.rows))
	for i := range s.rows {
		v := s.rows[i].Value(m)
		if IsMissing(v) {
			continue
		}
		out = append(out, Ranked{Country: s.rows[i].Country, Value: v})
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Report is everything the renderers and the summary consume.
type Report struct {
	Focus  FocusSet
	Rows   []Row
	Latest Snapshot
}

// BuildReport runs the preparation and snapshot stages over a full load.
func BuildReport(obs []Observation, focus FocusSet, window int) Report {
	rows := Prepare(obs, focus, window)
	return Report{
		Focus:  focus,
		Rows:   rows,
		Latest: Latest(rows, focus),
	}
}
