// Package draw selects random, non-repeating pixel coordinates from a stratum.
//
// What:
//
//   - Strategy draws k distinct coordinates from the eligible coordinates of
//     one class, driven by a 64-bit seed.
//   - WithoutReplacement (default) delegates index selection to gonum's
//     stat/sampleuv.WithoutReplacement.
//   - PartialShuffle runs k steps of a Fisher–Yates shuffle over the index range.
//   - Seed is either Fixed or Entropy; Resolve turns it into the concrete value
//     that must be recorded to replay an entropy-seeded draw.
//   - DeriveSeed splits one seed into independent per-class streams.
//
// Determinism:
//
//   - Same (coordinates, k, seed) ⇒ identical coordinates in identical order,
//     across runs and platforms, for a given Strategy.
//   - Generators are math/rand/v2 PCG sources created per call; nothing is
//     shared between calls or goroutines.
//
// Complexity:
//
//   - WithoutReplacement: O(k²) for k² ≤ n, O(n) otherwise (sampleuv picks).
//   - PartialShuffle: O(n) memory for the index table, O(k) swaps.
//
// Errors:
//
//   - ErrOverAllocation: k exceeds the number of eligible coordinates.
//   - ErrNegativeCount: k < 0.
package draw
