package raster

import "fmt"

// RasterOpenError reports a raster that could not be opened or decoded.
type RasterOpenError struct {
	Path string
	Err  error
}

func (e *RasterOpenError) Error() string {
	return fmt.Sprintf("raster: cannot open %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RasterOpenError) Unwrap() error { return e.Err }

// BandIndexError reports a band index outside 1..Count.
type BandIndexError struct {
	Index int
	Count int
}

func (e *BandIndexError) Error() string {
	return fmt.Sprintf("raster: cannot load band %d (image has %d)", e.Index, e.Count)
}

func checkBand(index, count int) error {
	if index < 1 || index > count {
		return &BandIndexError{Index: index, Count: count}
	}
	return nil
}
