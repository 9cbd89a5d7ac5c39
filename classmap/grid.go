package classmap

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Grid is an immutable rows×cols grid of class codes stored row-major.
// A Grid may be shared read-only by any number of designs and goroutines.
type Grid struct {
	rows, cols int
	cells      []int
}

// NewGrid constructs a Grid from a non-empty, rectangular 2D slice indexed
// [row][col]. It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if values has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Complexity: O(R×C) time and memory.
func NewGrid(values [][]int) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(values), len(values[0])
	for _, row := range values {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}
	cells := make([]int, 0, rows*cols)
	for _, row := range values {
		cells = append(cells, row...)
	}

	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// FromSlice constructs a Grid from a flat row-major slice of rows*cols codes.
// The slice is copied.
func FromSlice(rows, cols int, cells []int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	if len(cells) != rows*cols {
		return nil, ErrNonRectangular
	}

	return &Grid{rows: rows, cols: cols, cells: slices.Clone(cells)}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns rows*cols.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether (row,col) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the code stored at (row,col). It panics when out of bounds,
// like slice indexing; check InBounds first for untrusted coordinates.
func (g *Grid) At(row, col int) int {
	if !g.InBounds(row, col) {
		panic("classmap: coordinate out of range")
	}
	return g.cells[g.index(row, col)]
}

// Rows2D returns a fresh [row][col] copy of the grid.
func (g *Grid) Rows2D() [][]int {
	out := make([][]int, g.rows)
	for r := range out {
		out[r] = slices.Clone(g.cells[r*g.cols : (r+1)*g.cols])
	}
	return out
}

// Fingerprint returns the xxHash64 of the grid shape and contents.
// Two grids share a fingerprint iff they are (with overwhelming probability)
// identical, which lets a stored sample be tied back to its source map.
func (g *Grid) Fingerprint() uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 8*256)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(g.rows))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(g.cols))
	for _, v := range g.cells {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
		if len(buf) == cap(buf) {
			_, _ = h.Write(buf)
			buf = buf[:0]
		}
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}

// Distinct returns every code present in the grid, masked or not, ascending.
// Category-name reconciliation works on this raw inventory.
func Distinct(g *Grid) []int {
	seen := make(map[int]struct{})
	for _, v := range g.cells {
		seen[v] = struct{}{}
	}
	codes := make([]int, 0, len(seen))
	for v := range seen {
		codes = append(codes, v)
	}
	slices.Sort(codes)
	return codes
}

// index maps (row,col) to a row-major index: row*cols + col.
func (g *Grid) index(row, col int) int {
	return row*g.cols + col
}

// coordinate converts a row-major index back to (row,col).
func (g *Grid) coordinate(idx int) Coord {
	return Coord{Row: idx / g.cols, Col: idx % g.cols}
}
