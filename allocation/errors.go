package allocation

import "errors"

var (
	// ErrInvalidTotal indicates a requested total sample size below one.
	ErrInvalidTotal = errors.New("allocation: total sample size must be >= 1")

	// ErrInsufficientSampleSize indicates fewer samples than classes under a
	// policy that guarantees every class at least one sample.
	ErrInsufficientSampleSize = errors.New("allocation: total sample size is smaller than the number of classes")

	// ErrInvalidAllocation indicates a user-supplied vector with the wrong
	// length, a negative entry, or a sum different from the total.
	ErrInvalidAllocation = errors.New("allocation: invalid user-specified allocation")

	// ErrAllocationInvariant indicates a computed allocation whose sum differs
	// from the requested total.
	ErrAllocationInvariant = errors.New("allocation: allocation does not sum to the requested total")

	// ErrInvalidProportions indicates class proportions that are empty,
	// negative, non-finite, or do not sum to one within tolerance.
	ErrInvalidProportions = errors.New("allocation: invalid class proportions")

	// ErrUnknownPolicy indicates an unrecognized policy selector.
	ErrUnknownPolicy = errors.New("allocation: unknown allocation policy")
)
