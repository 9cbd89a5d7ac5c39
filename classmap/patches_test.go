package classmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stratify/classmap"
)

// TestPatches_Connectivity contrasts Conn4 and Conn8 on diagonal neighbors.
func TestPatches_Connectivity(t *testing.T) {
	g, err := classmap.NewGrid([][]int{
		{1, 2, 1},
		{2, 1, 2},
		{1, 2, 9},
	})
	require.NoError(t, err)

	p4, err := classmap.Patches(g, classmap.MaskValue(9), classmap.Conn4)
	require.NoError(t, err)
	assert.Equal(t, []classmap.PatchStat{
		{Code: 1, Patches: 4, Largest: 1},
		{Code: 2, Patches: 4, Largest: 1},
	}, p4)

	p8, err := classmap.Patches(g, classmap.MaskValue(9), classmap.Conn8)
	require.NoError(t, err)
	assert.Equal(t, []classmap.PatchStat{
		{Code: 1, Patches: 1, Largest: 4},
		{Code: 2, Patches: 1, Largest: 4},
	}, p8)
}

// TestPatches_Blocks counts separated blocks of the same class.
func TestPatches_Blocks(t *testing.T) {
	g, err := classmap.NewGrid([][]int{
		{3, 3, 0, 3},
		{3, 0, 0, 3},
		{0, 0, 0, 3},
	})
	require.NoError(t, err)

	ps, err := classmap.Patches(g, classmap.NoMask(), classmap.Conn4)
	require.NoError(t, err)
	assert.Equal(t, []classmap.PatchStat{
		{Code: 0, Patches: 1, Largest: 6},
		{Code: 3, Patches: 2, Largest: 3},
	}, ps)
}

// TestPatches_Degenerate propagates the statistics error.
func TestPatches_Degenerate(t *testing.T) {
	g, err := classmap.NewGrid([][]int{{7}})
	require.NoError(t, err)
	_, err = classmap.Patches(g, classmap.MaskValue(7), classmap.Conn4)
	assert.ErrorIs(t, err, classmap.ErrDegenerateInput)
}
