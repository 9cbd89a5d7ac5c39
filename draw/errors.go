package draw

import "errors"

var (
	// ErrOverAllocation indicates more samples requested than eligible pixels.
	ErrOverAllocation = errors.New("draw: requested sample count exceeds eligible pixels")
	// ErrNegativeCount indicates a negative sample count.
	ErrNegativeCount = errors.New("draw: sample count must be non-negative")
)
