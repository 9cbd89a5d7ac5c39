package classmap

// Patches finds the contiguous patches of every eligible class in g according
// to conn and returns one PatchStat per class, ascending by code.
// Two cells belong to the same patch when they carry the same code and are
// neighbors under conn. Masked cells never join a patch.
//
// Returns ErrEmptyGrid for a nil grid and ErrDegenerateInput when every cell
// is masked.
//
// Time:   O(R·C·d), where d = 4 or 8.
// Memory: O(R·C) for visited flags and the BFS queue.
func Patches(g *Grid, nd NoData, conn Connectivity) ([]PatchStat, error) {
	stats, err := Compute(g, nd)
	if err != nil {
		return nil, err
	}

	out := make([]PatchStat, len(stats.Classes))
	for i, c := range stats.Classes {
		out[i].Code = c.Code
	}

	seen := make([]bool, len(g.cells))
	offsets := conn.offsets()
	queue := make([]int, 0, 64)

	for i0, v := range g.cells {
		if seen[i0] || nd.Masks(v) {
			continue
		}
		// BFS over same-code neighbors
		queue = append(queue[:0], i0)
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			u := g.coordinate(queue[qi])
			for _, d := range offsets {
				r, c := u.Row+d[0], u.Col+d[1]
				if !g.InBounds(r, c) {
					continue
				}
				vi := g.index(r, c)
				if seen[vi] || g.cells[vi] != v {
					continue
				}
				seen[vi] = true
				queue = append(queue, vi)
			}
		}

		k, _ := stats.Index(v)
		out[k].Patches++
		if len(queue) > out[k].Largest {
			out[k].Largest = len(queue)
		}
	}

	return out, nil
}
