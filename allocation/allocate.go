package allocation

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// proportionTolerance bounds |Σp - 1| for accepted class proportions.
const proportionTolerance = 1e-6

// Allocation holds one sample count per class in canonical class order.
type Allocation []int

// Sum returns the total number of allocated samples.
func (a Allocation) Sum() int {
	total := 0
	for _, n := range a {
		total += n
	}
	return total
}

// Spread returns max(a) - min(a), or 0 for an empty allocation.
func (a Allocation) Spread() int {
	if len(a) == 0 {
		return 0
	}
	return slices.Max(a) - slices.Min(a)
}

// Allocate splits total samples across len(proportions) classes under policy.
// user is read only for UserSpecified and ignored otherwise.
//
// The returned Allocation always sums to total exactly.
func Allocate(proportions []float64, total int, policy Policy, user []int) (Allocation, error) {
	if total < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTotal, total)
	}
	if err := validateProportions(proportions); err != nil {
		return nil, err
	}
	classes := len(proportions)
	if policy.RequiresMinimum() && total < classes {
		return nil, fmt.Errorf("%w: %d samples for %d classes", ErrInsufficientSampleSize, total, classes)
	}

	var out Allocation
	switch policy {
	case Proportional:
		out = proportional(proportions, total)
	case Equal:
		out = equal(classes, total)
	case UserSpecified:
		return userSpecified(user, classes, total)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownPolicy, policy)
	}

	if sum := out.Sum(); sum != total {
		return nil, fmt.Errorf("%w: %s allocation sums to %d, want %d", ErrAllocationInvariant, policy, sum, total)
	}
	return out, nil
}

// proportional implements area-weighted allocation with the clamp rule.
// Requires total >= len(props).
func proportional(props []float64, total int) Allocation {
	out := make(Allocation, len(props))
	remaining := total
	for i, p := range props {
		later := len(props) - i - 1
		if later == 0 {
			// last class absorbs the cumulative rounding remainder
			out[i] = remaining
			break
		}
		n := int(math.Round(float64(total) * p))
		if n < 1 {
			n = 1
		}
		if limit := remaining - later; n > limit {
			n = limit
		}
		out[i] = n
		remaining -= n
	}
	return out
}

// equal implements even allocation; the remainder goes to the first classes.
func equal(classes, total int) Allocation {
	base, extra := total/classes, total%classes
	out := make(Allocation, classes)
	for i := range out {
		out[i] = base
		if i < extra {
			out[i]++
		}
	}
	return out
}

// userSpecified validates a caller-provided vector.
func userSpecified(user []int, classes, total int) (Allocation, error) {
	if len(user) != classes {
		return nil, fmt.Errorf("%w: %d entries for %d classes", ErrInvalidAllocation, len(user), classes)
	}
	sum := 0
	for i, n := range user {
		if n < 0 {
			return nil, fmt.Errorf("%w: entry %d is negative (%d)", ErrInvalidAllocation, i, n)
		}
		sum += n
	}
	if sum != total {
		return nil, fmt.Errorf("%w: entries sum to %d, want %d", ErrInvalidAllocation, sum, total)
	}
	return slices.Clone(Allocation(user)), nil
}

// validateProportions checks that props is a finite probability vector.
func validateProportions(props []float64) error {
	if len(props) == 0 {
		return fmt.Errorf("%w: no classes", ErrInvalidProportions)
	}
	if floats.HasNaN(props) {
		return fmt.Errorf("%w: NaN proportion", ErrInvalidProportions)
	}
	if floats.Min(props) < 0 || math.IsInf(floats.Max(props), 0) {
		return fmt.Errorf("%w: proportions must lie in [0,1]", ErrInvalidProportions)
	}
	if sum := floats.Sum(props); !scalar.EqualWithinAbs(sum, 1, proportionTolerance) {
		return fmt.Errorf("%w: proportions sum to %g", ErrInvalidProportions, sum)
	}
	return nil
}
