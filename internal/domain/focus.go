package domain

// FocusSet is the ordered list of countries a report covers. Position in the
// list fixes legend order and palette color for every chart.
type FocusSet struct {
	names []string
	index map[string]int
}

// NewFocusSet builds a FocusSet. A repeated name keeps its first position.
func NewFocusSet(names ...string) FocusSet {
	f := FocusSet{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
	}
	for _, n := range names {
		if _, ok := f.index[n]; ok {
			continue
		}
		f.index[n] = len(f.names)
		f.names = append(f.names, n)
	}
	return f
}

// Names returns the countries in focus order.
func (f FocusSet) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Len returns the number of focus countries.
func (f FocusSet) Len() int {
	return len(f.names)
}

// Contains reports whether country is in the set.
func (f FocusSet) Contains(country string) bool {
	_, ok := f.index[country]
	return ok
}

// Index returns the country's position, or -1 when it is not in the set.
func (f FocusSet) Index(country string) int {
	if i, ok := f.index[country]; ok {
		return i
	}
	return -1
}
