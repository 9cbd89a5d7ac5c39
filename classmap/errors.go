package classmap

import "errors"

var (
	// ErrEmptyGrid indicates the input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("classmap: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("classmap: all rows must have the same length")
	// ErrDegenerateInput indicates that no cell survives the no-data mask, so
	// no class inventory or proportions exist.
	ErrDegenerateInput = errors.New("classmap: no eligible pixels after masking")
)
