// Package labels reconciles raster category names with the class codes found
// in a map, producing the descriptions shown next to class statistics.
//
// Rules, given distinct codes (ascending) and declared names:
//
//   - no names: every code is labelled "Class {code}".
//   - as many names as codes: names map 1:1 in ascending code order.
//   - more names than codes: under ModeIndexed, when every code lies in
//     [0, len(names)), codes are read as indices into the name table and the
//     table lists values 0..len(names)-1; otherwise (and always under
//     ModePositional) names keep their order and the extra names are paired
//     with a missing value.
//   - fewer names than codes: names are discarded and "Class {code}" is used.
//
// ModeIndexed reproduces the long-standing convention of GDAL category tables
// (category i names pixel value i). It assumes sparse occupancy of a
// contiguous code range and is wrong for tables that list only present
// codes; ModePositional switches it off.
package labels

import "fmt"

// Mode selects how a surplus of names is interpreted.
type Mode int

const (
	// ModeIndexed treats codes as indices into the name table when they fit.
	ModeIndexed Mode = iota
	// ModePositional never reinterprets codes; names follow code order.
	ModePositional
)

// String returns "indexed" or "positional".
func (m Mode) String() string {
	if m == ModePositional {
		return "positional"
	}
	return "indexed"
}

// ParseMode parses "indexed" or "positional"; empty selects ModeIndexed.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "indexed":
		return ModeIndexed, nil
	case "positional":
		return ModePositional, nil
	}
	return 0, fmt.Errorf("labels: unknown mode %q", s)
}

// Label pairs a display value with its description. HasValue is false for
// names that could not be matched to any code.
type Label struct {
	Value    int
	HasValue bool
	Name     string
}

// Table is an ordered list of labels.
type Table []Label

// Fallback returns the default description of a code.
func Fallback(code int) string {
	return fmt.Sprintf("Class %d", code)
}

// Reconcile builds the label table for codes (ascending, distinct) and names.
func Reconcile(codes []int, names []string, mode Mode) Table {
	switch {
	case len(names) == 0 || len(names) < len(codes):
		return fallbackTable(codes)
	case len(names) == len(codes):
		out := make(Table, len(codes))
		for i, c := range codes {
			out[i] = Label{Value: c, HasValue: true, Name: names[i]}
		}
		return out
	}

	out := make(Table, len(names))
	if mode == ModeIndexed && withinRange(codes, len(names)) {
		for i, n := range names {
			out[i] = Label{Value: i, HasValue: true, Name: n}
		}
		return out
	}
	for i, n := range names {
		out[i] = Label{Name: n}
		if i < len(codes) {
			out[i].Value, out[i].HasValue = codes[i], true
		}
	}
	return out
}

// NameFor returns the description of code, or Fallback(code) when the table
// has no label with that value.
func (t Table) NameFor(code int) string {
	for _, l := range t {
		if l.HasValue && l.Value == code {
			return l.Name
		}
	}
	return Fallback(code)
}

// Names returns the descriptions of codes, in order.
func (t Table) Names(codes []int) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = t.NameFor(c)
	}
	return out
}

func fallbackTable(codes []int) Table {
	out := make(Table, len(codes))
	for i, c := range codes {
		out[i] = Label{Value: c, HasValue: true, Name: Fallback(c)}
	}
	return out
}

func withinRange(codes []int, n int) bool {
	for _, c := range codes {
		if c < 0 || c >= n {
			return false
		}
	}
	return true
}
