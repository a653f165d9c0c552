package results

import (
	"fmt"
	"math"
	"sort"
)

// Table is an in-memory (Element, Component) -> value table.
// Missing cells and NaN values are not stored.
type Table struct {
	values map[int]map[string]float64
	known  map[string]bool
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		values: make(map[int]map[string]float64),
		known:  make(map[string]bool),
	}
}

// FromSamples builds a table from a list of samples
func FromSamples(samples []Sample) *Table {
	t := NewTable()
	for _, s := range samples {
		t.Set(s.Element, s.Component, s.Value)
	}
	return t
}

// Set stores a value. A NaN value registers the element but leaves the cell empty.
func (t *Table) Set(element int, component string, value float64) {
	row, ok := t.values[element]
	if !ok {
		row = make(map[string]float64)
		t.values[element] = row
	}
	if math.IsNaN(value) {
		return
	}
	row[component] = value
	t.known[component] = true
}

// AddElement registers an element with no values
func (t *Table) AddElement(element int) {
	if _, ok := t.values[element]; !ok {
		t.values[element] = make(map[string]float64)
	}
}

// Value returns the value of one cell
func (t *Table) Value(element int, component string) (float64, bool) {
	row, ok := t.values[element]
	if !ok {
		return 0, false
	}
	v, ok := row[component]
	return v, ok
}

// HasElement reports whether the element is in the table
func (t *Table) HasElement(element int) bool {
	_, ok := t.values[element]
	return ok
}

// Elements returns the element ids in ascending order
func (t *Table) Elements() []int {
	ids := make([]int, 0, len(t.values))
	for id := range t.values {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Components returns the names of the components holding at least one value,
// sorted by name. Columns that are empty for every element are left out.
func (t *Table) Components() []string {
	names := make([]string, 0, len(t.known))
	for name := range t.known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of elements
func (t *Table) Len() int {
	return len(t.values)
}

// Samples returns the i-end and j-end values of a force type (e.g. "Mz") for each
// requested element. It fails on the first element that is absent from the table
// or has no value for either end.
func (t *Table) Samples(elements []int, force string) (map[int]EndPair, error) {
	iName := ComponentName(force, EndI)
	jName := ComponentName(force, EndJ)

	out := make(map[int]EndPair, len(elements))
	for _, id := range elements {
		if !t.HasElement(id) {
			return nil, fmt.Errorf("element %d: %w", id, ErrUnknownElement)
		}
		vi, ok := t.Value(id, iName)
		if !ok {
			return nil, fmt.Errorf("element %d has no %s: %w", id, iName, ErrUnknownComponent)
		}
		vj, ok := t.Value(id, jName)
		if !ok {
			return nil, fmt.Errorf("element %d has no %s: %w", id, jName, ErrUnknownComponent)
		}
		out[id] = EndPair{I: vi, J: vj}
	}
	return out, nil
}
