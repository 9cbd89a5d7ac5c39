package classmap

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Coord addresses a single pixel by row and column.
type Coord struct {
	Row, Col int
}

// String formats the coordinate as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// String returns "4" or "8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "8"
	}
	return "4"
}

// offsets returns the (dRow, dCol) neighbor offsets for the connectivity.
func (c Connectivity) offsets() [][2]int {
	if c == Conn8 {
		return [][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
	}
	return [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
}

// NoData lists the class codes excluded from statistics and sampling.
// The zero value masks nothing.
type NoData struct {
	values []int
}

// NoMask returns a NoData that keeps every cell eligible.
func NoMask() NoData {
	return NoData{}
}

// MaskValue returns a NoData excluding a single code.
func MaskValue(v int) NoData {
	return NoData{values: []int{v}}
}

// MaskValues returns a NoData excluding every listed code.
// Duplicates are removed; an empty list is equivalent to NoMask.
func MaskValues(vs ...int) NoData {
	if len(vs) == 0 {
		return NoData{}
	}
	values := slices.Clone(vs)
	slices.Sort(values)
	return NoData{values: slices.Compact(values)}
}

// IsSet reports whether any code is masked.
func (n NoData) IsSet() bool {
	return len(n.values) > 0
}

// Values returns a copy of the masked codes in ascending order.
func (n NoData) Values() []int {
	return slices.Clone(n.values)
}

// Masks reports whether v is a no-data code.
func (n NoData) Masks(v int) bool {
	for _, m := range n.values {
		if m == v {
			return true
		}
	}
	return false
}

// String renders the masked codes as a comma separated list, or "none".
func (n NoData) String() string {
	if len(n.values) == 0 {
		return "none"
	}
	parts := make([]string, len(n.values))
	for i, v := range n.values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

// ClassStat holds the population statistics of one class.
type ClassStat struct {
	Code       int     // class code as stored in the grid
	PixelCount int     // number of eligible cells carrying Code
	Proportion float64 // PixelCount / Statistics.Eligible
}

// Statistics is the class inventory of a grid under a no-data mask.
// Classes are ordered by ascending Code; that order is the canonical order
// used by allocation vectors and sample sets.
type Statistics struct {
	Classes  []ClassStat
	Eligible int // cells not masked as no-data
	Masked   int // cells masked as no-data
}

// Len returns the number of classes.
func (s Statistics) Len() int {
	return len(s.Classes)
}

// Codes returns the class codes in canonical order.
func (s Statistics) Codes() []int {
	out := make([]int, len(s.Classes))
	for i, c := range s.Classes {
		out[i] = c.Code
	}
	return out
}

// Counts returns the pixel counts in canonical order.
func (s Statistics) Counts() []int {
	out := make([]int, len(s.Classes))
	for i, c := range s.Classes {
		out[i] = c.PixelCount
	}
	return out
}

// Proportions returns the class proportions in canonical order.
func (s Statistics) Proportions() []float64 {
	out := make([]float64, len(s.Classes))
	for i, c := range s.Classes {
		out[i] = c.Proportion
	}
	return out
}

// Index returns the canonical position of code, or false if code is not a class.
func (s Statistics) Index(code int) (int, bool) {
	i, found := slices.BinarySearchFunc(s.Classes, code, func(c ClassStat, code int) int {
		return cmp.Compare(c.Code, code)
	})
	return i, found
}

// PatchStat summarizes the contiguous patches of one class.
type PatchStat struct {
	Code    int // class code
	Patches int // number of connected patches
	Largest int // cell count of the largest patch
}
