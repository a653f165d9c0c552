package results

import (
	"math"
	"sort"
)

// Critical is the element with the largest absolute value of one component
type Critical struct {
	Component string
	Element   int
	Value     float64 // signed value at that element
}

// CriticalElements finds, for every component, the element with the largest
// absolute value. Ties go to the lowest element id.
func (t *Table) CriticalElements() []Critical {
	elements := t.Elements()
	var out []Critical

	for _, comp := range t.Components() {
		found := false
		var best Critical
		for _, id := range elements {
			v, ok := t.Value(id, comp)
			if !ok {
				continue
			}
			if !found || math.Abs(v) > math.Abs(best.Value) {
				best = Critical{Component: comp, Element: id, Value: v}
				found = true
			}
		}
		if found {
			out = append(out, best)
		}
	}
	return out
}

// RankedRow is one element in a Ranking
type RankedRow struct {
	Element int
	Values  []float64 // aligned with Ranking.Columns, NaN where missing
	Max     float64   // largest absolute value over Values
}

// Ranking is a top-N table of elements ordered by their largest absolute value
// over a group of columns.
type Ranking struct {
	Columns   []string
	MaxColumn string
	Rows      []RankedRow
}

// Rank orders the elements by the largest absolute value over the columns
// selected by match and keeps the first n. Elements with no value in any
// selected column are left out. Equal maxima keep ascending element order.
func (t *Table) Rank(n int, match func(string) bool, maxColumn string) Ranking {
	r := Ranking{MaxColumn: maxColumn}
	for _, comp := range t.Components() {
		if match(comp) {
			r.Columns = append(r.Columns, comp)
		}
	}

	for _, id := range t.Elements() {
		row := RankedRow{Element: id, Values: make([]float64, len(r.Columns))}
		has := false
		for k, comp := range r.Columns {
			v, ok := t.Value(id, comp)
			if !ok {
				row.Values[k] = math.NaN()
				continue
			}
			row.Values[k] = v
			if !has || math.Abs(v) > row.Max {
				row.Max = math.Abs(v)
			}
			has = true
		}
		if has {
			r.Rows = append(r.Rows, row)
		}
	}

	sort.SliceStable(r.Rows, func(a, b int) bool {
		return r.Rows[a].Max > r.Rows[b].Max
	})
	if n >= 0 && len(r.Rows) > n {
		r.Rows = r.Rows[:n]
	}
	return r
}

// TopMoments ranks elements by their largest moment
func (t *Table) TopMoments(n int) Ranking {
	return t.Rank(n, IsMoment, "Max_Moment")
}

// TopShears ranks elements by their largest shear force
func (t *Table) TopShears(n int) Ranking {
	return t.Rank(n, IsShear, "Max_Shear")
}
