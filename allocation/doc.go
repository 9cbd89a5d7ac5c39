// Package allocation splits a total sample size across map classes.
//
// What:
//
//   - Policy selects one of three pure allocation rules: Proportional (to
//     area), Equal, or UserSpecified.
//   - Allocate maps (class proportions, total, policy, user vector) to an
//     Allocation: one non-negative count per class, in canonical class order,
//     whose sum equals the requested total exactly.
//
// Rules:
//
//   - Proportional: raw_i = round(n·p_i), rounding half away from zero. Classes
//     are walked in canonical order; each count is clamped to the samples still
//     remaining after reserving one unit for every later class, and never
//     drops below one. The last class absorbs the remainder.
//   - Equal: every class receives n div c; the n mod c leftover units go one
//     each to the first classes in canonical order.
//   - UserSpecified: the caller's vector is validated (length, non-negative
//     entries, exact sum) and returned unchanged.
//
// Proportional and Equal require n ≥ class count so every class can receive a
// sample; UserSpecified is exempt because the caller owns the vector.
//
// Determinism: no randomness is involved; identical inputs give identical output.
//
// Complexity: O(c) time and memory for c classes.
//
// Errors:
//
//   - ErrInvalidTotal: n < 1.
//   - ErrInsufficientSampleSize: n < class count under Proportional or Equal.
//   - ErrInvalidAllocation: a user vector fails length, sign or sum checks.
//   - ErrAllocationInvariant: a computed allocation does not sum to n.
//   - ErrInvalidProportions: proportions are empty, negative, non-finite or do
//     not sum to one.
//   - ErrUnknownPolicy: the policy selector is not recognized.
package allocation
