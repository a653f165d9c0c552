package results

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownElement is returned when an element id is not in the table.
	ErrUnknownElement = errors.New("unknown element")

	// ErrUnknownComponent is returned when a force component has no value for an element.
	ErrUnknownComponent = errors.New("unknown component")

	// ErrUnsupportedFormat is returned by Load for files it cannot read.
	ErrUnsupportedFormat = errors.New("unsupported results format")
)

// Element ends
const (
	EndI = "i"
	EndJ = "j"
)

// Sample is one force value of one element
type Sample struct {
	Element   int
	Component string
	Value     float64
}

// EndPair holds the i-end and j-end values of one force type on one element
type EndPair struct {
	I float64
	J float64
}

// Component is a force component name split into its force type and element end,
// e.g. "Mz_i" is {Force: "Mz", End: "i"}.
type Component struct {
	Force string
	End   string
}

// ParseComponent splits a name of the form <Force>_<end>.
// Names without an i/j suffix are reported as not ok.
func ParseComponent(name string) (Component, bool) {
	idx := strings.LastIndex(name, "_")
	if idx <= 0 || idx == len(name)-1 {
		return Component{}, false
	}
	end := name[idx+1:]
	if end != EndI && end != EndJ {
		return Component{}, false
	}
	return Component{Force: name[:idx], End: end}, true
}

// String joins the component back into <Force>_<end>
func (c Component) String() string {
	return c.Force + "_" + c.End
}

// ComponentName builds the column name of a force type at one end
func ComponentName(force, end string) string {
	return Component{Force: force, End: end}.String()
}

// IsMoment reports whether a column holds a moment (the name contains an M).
func IsMoment(component string) bool {
	return strings.Contains(component, "M")
}

// IsShear reports whether a column holds a shear force (the name contains a V).
func IsShear(component string) bool {
	return strings.Contains(component, "V")
}
