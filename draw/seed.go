package draw

import (
	"fmt"
	"math/rand/v2"
)

// Seed selects the generator seed of a draw: a fixed value for reproducible
// reports, or entropy when none is given. The zero value is Entropy.
type Seed struct {
	value uint64
	fixed bool
}

// Fixed returns a seed that always resolves to v.
func Fixed(v uint64) Seed {
	return Seed{value: v, fixed: true}
}

// Entropy returns a seed resolved from the runtime's entropy-seeded generator.
func Entropy() Seed {
	return Seed{}
}

// IsFixed reports whether the seed was given explicitly.
func (s Seed) IsFixed() bool {
	return s.fixed
}

// Resolve returns the concrete seed value. For an entropy seed every call
// returns a fresh value; callers that need reproducibility must record it.
func (s Seed) Resolve() uint64 {
	if s.fixed {
		return s.value
	}
	return rand.Uint64()
}

// String renders "fixed(v)" or "entropy".
func (s Seed) String() string {
	if s.fixed {
		return fmt.Sprintf("fixed(%d)", s.value)
	}
	return "entropy"
}
