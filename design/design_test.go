package design_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stratify/allocation"
	"github.com/katalvlaran/stratify/classmap"
	"github.com/katalvlaran/stratify/design"
	"github.com/katalvlaran/stratify/draw"
)

// scenarioGrid is the 4x1 row [1,1,2,255].
func scenarioGrid(t *testing.T) *classmap.Grid {
	t.Helper()
	g, err := classmap.NewGrid([][]int{{1, 1, 2, 255}})
	require.NoError(t, err)
	return g
}

// landscape returns a 20x30 map with three classes of very different area and
// a ring of no-data (0) around it.
func landscape(t *testing.T) *classmap.Grid {
	t.Helper()
	rows := make([][]int, 20)
	for r := range rows {
		rows[r] = make([]int, 30)
		for c := range rows[r] {
			switch {
			case r == 0 || c == 0 || r == 19 || c == 29:
				rows[r][c] = 0
			case c < 20:
				rows[r][c] = 10
			case r < 15:
				rows[r][c] = 20
			default:
				rows[r][c] = 30
			}
		}
	}
	g, err := classmap.NewGrid(rows)
	require.NoError(t, err)
	return g
}

func newDesign(t *testing.T, g *classmap.Grid, nd classmap.NoData, opts ...design.Option) *design.Design {
	t.Helper()
	opts = append([]design.Option{design.WithLogger(nil)}, opts...)
	d, err := design.New(g, nd, opts...)
	require.NoError(t, err)
	return d
}

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

func TestNew_StatsReady(t *testing.T) {
	d := newDesign(t, scenarioGrid(t), classmap.MaskValue(255))
	assert.Equal(t, design.StateStatsReady, d.State())

	stats := d.Statistics()
	assert.Equal(t, []int{1, 2}, stats.Codes())
	assert.Equal(t, []int{2, 1}, stats.Counts())
	assert.Nil(t, d.Allocation())
	assert.Nil(t, d.SampleSet())
}

func TestNew_Errors(t *testing.T) {
	_, err := design.New(nil, classmap.NoMask(), design.WithLogger(nil))
	assert.ErrorIs(t, err, classmap.ErrEmptyGrid)

	_, err = design.New(scenarioGrid(t), classmap.MaskValues(1, 2, 255), design.WithLogger(nil))
	assert.ErrorIs(t, err, classmap.ErrDegenerateInput)
}

// TestStatistics_Copy ensures callers cannot mutate the design's statistics.
func TestStatistics_Copy(t *testing.T) {
	d := newDesign(t, scenarioGrid(t), classmap.MaskValue(255))
	s := d.Statistics()
	s.Classes[0].PixelCount = 1000
	assert.Equal(t, 2, d.Statistics().Classes[0].PixelCount)
}

//----------------------------------------------------------------------------//
// Allocation
//----------------------------------------------------------------------------//

func TestAllocate_Scenarios(t *testing.T) {
	d := newDesign(t, scenarioGrid(t), classmap.MaskValue(255))

	got, err := d.Allocate(2, allocation.Equal, nil)
	require.NoError(t, err)
	assert.Equal(t, allocation.Allocation{1, 1}, got)
	assert.Equal(t, design.StateAllocated, d.State())

	got, err = d.Allocate(3, allocation.Proportional, nil)
	require.NoError(t, err)
	assert.Equal(t, allocation.Allocation{2, 1}, got)
	assert.Equal(t, 3, d.Total())
	assert.Equal(t, allocation.Proportional, d.Policy())
}

// TestAllocate_FailureKeepsState: a failed allocation leaves the design untouched.
func TestAllocate_FailureKeepsState(t *testing.T) {
	d := newDesign(t, scenarioGrid(t), classmap.MaskValue(255))

	_, err := d.Allocate(1, allocation.Proportional, nil)
	assert.ErrorIs(t, err, allocation.ErrInsufficientSampleSize)
	assert.Equal(t, design.StateStatsReady, d.State())

	_, err = d.Allocate(0, allocation.Equal, nil)
	assert.ErrorIs(t, err, allocation.ErrInvalidTotal)
	assert.Equal(t, design.StateStatsReady, d.State())

	_, err = d.Allocate(3, allocation.Equal, nil)
	require.NoError(t, err)
	_, err = d.Sample(draw.Fixed(1))
	require.NoError(t, err)

	_, err = d.Allocate(3, allocation.UserSpecified, []int{1, 1})
	assert.ErrorIs(t, err, allocation.ErrInvalidAllocation)
	assert.Equal(t, design.StateSampled, d.State())
	assert.Equal(t, allocation.Allocation{2, 1}, d.Allocation())
	assert.NotNil(t, d.SampleSet())
}

// TestAllocate_DropsSamples: a new allocation invalidates the previous sample set.
func TestAllocate_DropsSamples(t *testing.T) {
	d := newDesign(t, landscape(t), classmap.MaskValue(0))
	_, err := d.Allocate(12, allocation.Equal, nil)
	require.NoError(t, err)
	_, err = d.Sample(draw.Fixed(5))
	require.NoError(t, err)

	_, err = d.Allocate(9, allocation.Equal, nil)
	require.NoError(t, err)
	assert.Equal(t, design.StateAllocated, d.State())
	assert.Nil(t, d.SampleSet())
}

//----------------------------------------------------------------------------//
// Sampling
//----------------------------------------------------------------------------//

func TestSample_BeforeAllocate(t *testing.T) {
	d := newDesign(t, scenarioGrid(t), classmap.MaskValue(255))
	_, err := d.Sample(draw.Fixed(1))
	assert.ErrorIs(t, err, design.ErrInvalidState)
	assert.Equal(t, design.StateStatsReady, d.State())
}

// TestSample_Valid checks every SampleSet invariant on a larger map.
func TestSample_Valid(t *testing.T) {
	g := landscape(t)
	nd := classmap.MaskValue(0)
	for _, s := range []draw.Strategy{draw.WithoutReplacement{}, draw.PartialShuffle{}} {
		d := newDesign(t, g, nd, design.WithStrategy(s))
		alloc, err := d.Allocate(60, allocation.Proportional, nil)
		require.NoError(t, err)

		set, err := d.Sample(draw.Fixed(2024))
		require.NoError(t, err)
		assert.Equal(t, design.StateSampled, d.State())
		assert.Equal(t, s.Name(), set.Strategy)
		assert.Equal(t, uint64(2024), set.Seed)
		assert.Equal(t, 60, set.Len())

		codes := d.Statistics().Codes()
		require.Len(t, set.Classes, len(codes))
		for i, cs := range set.Classes {
			assert.Equal(t, codes[i], cs.Code)
			assert.Len(t, cs.Coords, alloc[i])
			seen := make(map[classmap.Coord]bool)
			for _, c := range cs.Coords {
				v := g.At(c.Row, c.Col)
				assert.Equal(t, cs.Code, v)
				assert.False(t, nd.Masks(v))
				assert.False(t, seen[c], "repeated %v", c)
				seen[c] = true
			}
		}
	}
}

// TestSample_Reproducible: same seed ⇒ same set; other seeds redraw in place.
func TestSample_Reproducible(t *testing.T) {
	g := landscape(t)
	a := newDesign(t, g, classmap.MaskValue(0))
	b := newDesign(t, g, classmap.MaskValue(0))
	for _, d := range []*design.Design{a, b} {
		_, err := d.Allocate(30, allocation.Equal, nil)
		require.NoError(t, err)
	}

	s1, err := a.Sample(draw.Fixed(77))
	require.NoError(t, err)
	s2, err := b.Sample(draw.Fixed(77))
	require.NoError(t, err)
	assert.Equal(t, s1.Flatten(), s2.Flatten())

	s3, err := a.Sample(draw.Fixed(78))
	require.NoError(t, err)
	assert.NotEqual(t, s1.Flatten(), s3.Flatten())
	assert.Equal(t, s3, a.SampleSet())
	assert.Equal(t, design.StateSampled, a.State())
}

// TestSample_ReturnsCopy: edits to a returned set never reach the design.
func TestSample_ReturnsCopy(t *testing.T) {
	d := newDesign(t, landscape(t), classmap.MaskValue(0))
	_, err := d.Allocate(9, allocation.Equal, nil)
	require.NoError(t, err)
	set, err := d.Sample(draw.Fixed(5))
	require.NoError(t, err)
	want := d.SampleSet().Flatten()

	set.Classes[0].Coords[0] = classmap.Coord{Row: -1, Col: -1}
	set.Classes = set.Classes[:1]
	got := d.SampleSet()
	got.Classes[1].Coords = nil

	assert.Equal(t, want, d.SampleSet().Flatten())
	assert.Nil(t, (*design.SampleSet)(nil).Clone())
}

// TestSample_EntropyReplay: an entropy draw is replayed from its recorded seed.
func TestSample_EntropyReplay(t *testing.T) {
	d := newDesign(t, landscape(t), classmap.MaskValue(0))
	_, err := d.Allocate(25, allocation.Proportional, nil)
	require.NoError(t, err)

	first, err := d.Sample(draw.Entropy())
	require.NoError(t, err)
	replay, err := d.Sample(draw.Fixed(first.Seed))
	require.NoError(t, err)
	assert.Equal(t, first.Flatten(), replay.Flatten())
}

// TestSample_ClassStreamsIndependent: changing one class's count keeps the other's draw.
func TestSample_ClassStreamsIndependent(t *testing.T) {
	d := newDesign(t, landscape(t), classmap.MaskValue(0))

	_, err := d.Allocate(12, allocation.UserSpecified, []int{4, 4, 4})
	require.NoError(t, err)
	a, err := d.Sample(draw.Fixed(9))
	require.NoError(t, err)

	_, err = d.Allocate(15, allocation.UserSpecified, []int{4, 7, 4})
	require.NoError(t, err)
	b, err := d.Sample(draw.Fixed(9))
	require.NoError(t, err)

	assert.Equal(t, a.For(10), b.For(10))
	assert.Equal(t, a.For(30), b.For(30))
	assert.Nil(t, a.For(99))
}

// TestSample_OverAllocation: a class with one pixel cannot yield two samples.
func TestSample_OverAllocation(t *testing.T) {
	d := newDesign(t, scenarioGrid(t), classmap.MaskValue(255))

	_, err := d.Allocate(3, allocation.UserSpecified, []int{1, 2})
	require.NoError(t, err)
	_, err = d.Sample(draw.Fixed(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, draw.ErrOverAllocation))
	assert.Contains(t, err.Error(), "class 2")
	assert.Equal(t, design.StateAllocated, d.State())
	assert.Nil(t, d.SampleSet())

	// equal allocation can also exceed a small stratum
	_, err = d.Allocate(4, allocation.Equal, nil)
	require.NoError(t, err)
	_, err = d.Sample(draw.Fixed(1))
	assert.ErrorIs(t, err, draw.ErrOverAllocation)
}

// TestSample_StrategyError: strategy failures surface unchanged and keep the state.
func TestSample_StrategyError(t *testing.T) {
	d := newDesign(t, scenarioGrid(t), classmap.MaskValue(255), design.WithStrategy(failing{}))
	_, err := d.Allocate(2, allocation.Equal, nil)
	require.NoError(t, err)
	_, err = d.Sample(draw.Fixed(1))
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, design.StateAllocated, d.State())
}

type failing struct{}

var errBoom = errors.New("boom")

func (failing) Name() string { return "failing" }
func (failing) Draw([]classmap.Coord, int, uint64) ([]classmap.Coord, error) {
	return nil, errBoom
}

//----------------------------------------------------------------------------//
// Grid / mask replacement
//----------------------------------------------------------------------------//

func TestSetNoData_Resets(t *testing.T) {
	d := newDesign(t, scenarioGrid(t), classmap.MaskValue(255))
	_, err := d.Allocate(2, allocation.Equal, nil)
	require.NoError(t, err)
	_, err = d.Sample(draw.Fixed(3))
	require.NoError(t, err)

	require.NoError(t, d.SetNoData(classmap.MaskValues(2, 255)))
	assert.Equal(t, design.StateStatsReady, d.State())
	assert.Equal(t, []int{1}, d.Statistics().Codes())
	assert.Nil(t, d.Allocation())
	assert.Nil(t, d.SampleSet())
	assert.Equal(t, 0, d.Total())
}

func TestSetGrid_ErrorLeavesCreated(t *testing.T) {
	d := newDesign(t, scenarioGrid(t), classmap.MaskValue(255))
	_, err := d.Allocate(2, allocation.Equal, nil)
	require.NoError(t, err)

	allMasked, err := classmap.NewGrid([][]int{{255, 255}})
	require.NoError(t, err)
	err = d.SetGrid(allMasked)
	assert.ErrorIs(t, err, classmap.ErrDegenerateInput)
	assert.Equal(t, design.StateCreated, d.State())
	assert.Equal(t, 0, d.Statistics().Len())

	_, err = d.Allocate(2, allocation.Equal, nil)
	assert.ErrorIs(t, err, design.ErrInvalidState)
	_, err = d.Sample(draw.Fixed(1))
	assert.ErrorIs(t, err, design.ErrInvalidState)

	require.NoError(t, d.SetGrid(landscape(t)))
	require.NoError(t, d.SetNoData(classmap.MaskValue(0)))
	assert.Equal(t, []int{10, 20, 30}, d.Statistics().Codes())
}

func TestString(t *testing.T) {
	d := newDesign(t, landscape(t), classmap.MaskValue(0))
	_, err := d.Allocate(50, allocation.Proportional, nil)
	require.NoError(t, err)
	assert.Equal(t, "A stratified random probability sample of 50 samples for 3 classes", d.String())
	assert.Equal(t, "stats-ready", design.StateStatsReady.String())
}

// TestWithLogger records allocation and draw messages.
func TestWithLogger(t *testing.T) {
	var lines []string
	logf := func(format string, v ...interface{}) { lines = append(lines, format) }
	d, err := design.New(scenarioGrid(t), classmap.MaskValue(255), design.WithLogger(logf))
	require.NoError(t, err)
	_, err = d.Allocate(2, allocation.Equal, nil)
	require.NoError(t, err)
	_, err = d.Sample(draw.Fixed(1))
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}
