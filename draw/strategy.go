package draw

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/katalvlaran/stratify/classmap"
)

// Strategy draws k distinct coordinates from eligible using seed.
// Implementations must be deterministic in (eligible, k, seed), must not
// modify eligible, and must fail with ErrOverAllocation when k > len(eligible).
type Strategy interface {
	Draw(eligible []classmap.Coord, k int, seed uint64) ([]classmap.Coord, error)
	Name() string
}

// WithoutReplacement samples indices with gonum's sampleuv.WithoutReplacement.
type WithoutReplacement struct{}

// Name returns "without-replacement".
func (WithoutReplacement) Name() string { return "without-replacement" }

// Draw implements Strategy.
func (WithoutReplacement) Draw(eligible []classmap.Coord, k int, seed uint64) ([]classmap.Coord, error) {
	if err := checkCount(len(eligible), k); err != nil {
		return nil, err
	}
	if k == 0 {
		return []classmap.Coord{}, nil
	}
	idxs := make([]int, k)
	sampleuv.WithoutReplacement(idxs, len(eligible), newSource(seed))

	out := make([]classmap.Coord, k)
	for i, idx := range idxs {
		out[i] = eligible[idx]
	}
	return out, nil
}

// PartialShuffle samples by running k steps of a Fisher–Yates shuffle over
// the index range of eligible.
type PartialShuffle struct{}

// Name returns "partial-shuffle".
func (PartialShuffle) Name() string { return "partial-shuffle" }

// Draw implements Strategy.
func (PartialShuffle) Draw(eligible []classmap.Coord, k int, seed uint64) ([]classmap.Coord, error) {
	if err := checkCount(len(eligible), k); err != nil {
		return nil, err
	}
	idxs := make([]int, len(eligible))
	for i := range idxs {
		idxs[i] = i
	}
	partialShuffle(idxs, k, newRand(seed))

	out := make([]classmap.Coord, k)
	for i := 0; i < k; i++ {
		out[i] = eligible[idxs[i]]
	}
	return out, nil
}

// Default is the strategy used when none is configured.
var Default Strategy = WithoutReplacement{}

// Draw draws with the Default strategy.
func Draw(eligible []classmap.Coord, k int, seed uint64) ([]classmap.Coord, error) {
	return Default.Draw(eligible, k, seed)
}

// ParseStrategy resolves a strategy by name. An empty name selects Default.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "without-replacement", "sampleuv":
		return WithoutReplacement{}, nil
	case "partial-shuffle", "shuffle":
		return PartialShuffle{}, nil
	}
	return nil, fmt.Errorf("draw: unknown strategy %q", name)
}

func checkCount(n, k int) error {
	if k < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeCount, k)
	}
	if k > n {
		return fmt.Errorf("%w: %d requested, %d eligible", ErrOverAllocation, k, n)
	}
	return nil
}
