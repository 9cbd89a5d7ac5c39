package classmap

import "slices"

// Compute derives the class inventory of g under the no-data mask nd.
//
// A cell is eligible iff nd does not mask its code. Classes are the distinct
// eligible codes in ascending order; PixelCount counts eligible cells of the
// class and Proportion = PixelCount / Eligible.
//
// Returns ErrEmptyGrid for a nil grid and ErrDegenerateInput when every cell
// is masked. Compute is pure: g is only read.
//
// Complexity: O(R×C + K log K).
func Compute(g *Grid, nd NoData) (Statistics, error) {
	if g == nil || len(g.cells) == 0 {
		return Statistics{}, ErrEmptyGrid
	}

	counts := make(map[int]int)
	eligible := 0
	for _, v := range g.cells {
		if nd.Masks(v) {
			continue
		}
		counts[v]++
		eligible++
	}
	if eligible == 0 {
		return Statistics{}, ErrDegenerateInput
	}

	codes := make([]int, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	classes := make([]ClassStat, len(codes))
	for i, code := range codes {
		classes[i] = ClassStat{
			Code:       code,
			PixelCount: counts[code],
			Proportion: float64(counts[code]) / float64(eligible),
		}
	}

	return Statistics{
		Classes:  classes,
		Eligible: eligible,
		Masked:   len(g.cells) - eligible,
	}, nil
}

// Strata returns, for every class of stats in canonical order, the eligible
// coordinates of that class in row-major order. stats must have been computed
// from the same grid and mask.
//
// Complexity: O(R×C) time, O(Eligible) memory.
func Strata(g *Grid, nd NoData, stats Statistics) [][]Coord {
	out := make([][]Coord, len(stats.Classes))
	for i, c := range stats.Classes {
		out[i] = make([]Coord, 0, c.PixelCount)
	}
	for idx, v := range g.cells {
		if nd.Masks(v) {
			continue
		}
		i, ok := stats.Index(v)
		if !ok {
			continue
		}
		out[i] = append(out[i], g.coordinate(idx))
	}
	return out
}
