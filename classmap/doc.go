// Package classmap models a classified land-cover raster as an immutable grid
// of integer class codes and derives the per-class population statistics that
// drive stratified sampling.
//
// What:
//
//   - Grid wraps a rectangular, row-major grid of class codes. It is deep-copied
//     on construction and never mutated afterwards.
//   - NoData describes which codes are excluded from statistics and sampling:
//     none, a single value, or a set of values.
//   - Compute derives the class inventory (ascending code order), pixel counts
//     and area proportions of the eligible cells.
//   - Strata lists the eligible coordinates of every class, in canonical order.
//   - Patches counts contiguous patches per class under Conn4 or Conn8.
//
// Why:
//
//   - Accuracy assessment: proportions feed area-weighted allocation and the
//     stratum coordinate lists feed the random draw.
//   - Provenance: Fingerprint identifies the exact grid a sample was drawn from.
//
// Complexity:
//
//   - NewGrid, Compute, Strata, Distinct: O(R×C) time.
//   - Compute: O(R×C + K log K) with K distinct codes.
//   - Patches: O(R×C×d), Memory: O(R×C) (d = 4 or 8).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths, or a flat slice does not
//     match the requested shape.
//   - ErrDegenerateInput: every cell is masked as no-data.
package classmap
