package design

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/stratify/allocation"
	"github.com/katalvlaran/stratify/classmap"
	"github.com/katalvlaran/stratify/draw"
	"github.com/katalvlaran/stratify/internal/monitoring"
)

// Option configures a Design at construction.
type Option func(*Design)

// WithStrategy selects the draw strategy (default draw.Default).
func WithStrategy(s draw.Strategy) Option {
	return func(d *Design) {
		if s != nil {
			d.strategy = s
		}
	}
}

// WithLogger overrides the diagnostic logger (default monitoring.Logf).
// Passing nil mutes the design.
func WithLogger(f func(format string, v ...interface{})) Option {
	return func(d *Design) {
		if f == nil {
			f = monitoring.Discard
		}
		d.logf = f
	}
}

// Design is a stratified random sample design over one classification grid.
type Design struct {
	grid     *classmap.Grid
	nodata   classmap.NoData
	strategy draw.Strategy
	logf     func(format string, v ...interface{})

	state  State
	stats  classmap.Statistics
	strata [][]classmap.Coord // built on first Sample, tied to stats

	total   int
	policy  allocation.Policy
	alloc   allocation.Allocation
	samples *SampleSet
}

// New builds a Design over grid with the no-data mask nd and computes the
// class statistics. It fails, returning no design, when grid is nil or when
// the statistics cannot be computed (classmap.ErrDegenerateInput).
func New(grid *classmap.Grid, nd classmap.NoData, opts ...Option) (*Design, error) {
	d := &Design{
		grid:     grid,
		nodata:   nd,
		strategy: draw.Default,
		logf:     monitoring.Logf,
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.refresh(); err != nil {
		return nil, err
	}
	return d, nil
}

// State returns the current lifecycle state.
func (d *Design) State() State { return d.state }

// Grid returns the classification grid.
func (d *Design) Grid() *classmap.Grid { return d.grid }

// NoData returns the no-data mask.
func (d *Design) NoData() classmap.NoData { return d.nodata }

// Strategy returns the configured draw strategy.
func (d *Design) Strategy() draw.Strategy { return d.strategy }

// Statistics returns a copy of the class statistics. It is empty in StateCreated.
func (d *Design) Statistics() classmap.Statistics {
	out := d.stats
	out.Classes = slices.Clone(d.stats.Classes)
	return out
}

// Total returns the total sample size of the current allocation, or 0.
func (d *Design) Total() int { return d.total }

// Policy returns the policy of the current allocation.
func (d *Design) Policy() allocation.Policy { return d.policy }

// Allocation returns a copy of the current allocation, or nil before Allocate.
func (d *Design) Allocation() allocation.Allocation { return slices.Clone(d.alloc) }

// SampleSet returns a copy of the current sample set, or nil unless in
// StateSampled.
func (d *Design) SampleSet() *SampleSet { return d.samples.Clone() }

// Allocate splits total samples across the classes with policy. user is the
// per-class vector for allocation.UserSpecified and ignored otherwise.
//
// On success the previous sample set is dropped and the design moves to
// StateAllocated. On failure the design is left exactly as it was.
func (d *Design) Allocate(total int, policy allocation.Policy, user []int) (allocation.Allocation, error) {
	if d.state == StateCreated {
		return nil, fmt.Errorf("%w: allocate in state %s", ErrInvalidState, d.state)
	}

	switch policy {
	case allocation.Proportional:
		d.logf("Allocating %d samples proportional to area", total)
	case allocation.Equal:
		d.logf("Allocating %d samples to all strata equally", total)
	case allocation.UserSpecified:
		d.logf("Using user specified allocation of %d samples", total)
	}

	alloc, err := allocation.Allocate(d.stats.Proportions(), total, policy, user)
	if err != nil {
		return nil, err
	}

	d.total = total
	d.policy = policy
	d.alloc = alloc
	d.samples = nil
	d.state = StateAllocated
	return slices.Clone(alloc), nil
}

// Sample draws the allocated number of pixels from every class.
//
// Each class draws from its own stream, draw.DeriveSeed(resolved, code), so
// the same seed reproduces the same SampleSet. An entropy seed is resolved
// once and recorded in SampleSet.Seed.
//
// Sample may be called repeatedly; each success replaces the previous set.
// The returned set is the caller's own copy.
// A failure (e.g. draw.ErrOverAllocation) leaves the previous set and state.
func (d *Design) Sample(seed draw.Seed) (*SampleSet, error) {
	if d.state != StateAllocated && d.state != StateSampled {
		return nil, fmt.Errorf("%w: sample in state %s", ErrInvalidState, d.state)
	}
	if d.strata == nil {
		d.strata = classmap.Strata(d.grid, d.nodata, d.stats)
	}

	resolved := seed.Resolve()
	set := &SampleSet{
		Seed:     resolved,
		Strategy: d.strategy.Name(),
		Classes:  make([]ClassSample, len(d.stats.Classes)),
	}
	for i, c := range d.stats.Classes {
		coords, err := d.strategy.Draw(d.strata[i], d.alloc[i], draw.DeriveSeed(resolved, uint64(int64(c.Code))))
		if err != nil {
			return nil, fmt.Errorf("design: class %d: %w", c.Code, err)
		}
		set.Classes[i] = ClassSample{Code: c.Code, Coords: coords}
	}

	d.logf("Drew %d samples from %d strata (seed %d, %s)", set.Len(), len(set.Classes), resolved, set.Strategy)
	d.samples = set
	d.state = StateSampled
	return set.Clone(), nil
}

// SetGrid replaces the classification grid. Statistics, allocation and
// samples are discarded and statistics recomputed; on error the design stays
// in StateCreated until a valid grid or mask is set.
func (d *Design) SetGrid(g *classmap.Grid) error {
	d.grid = g
	return d.refresh()
}

// SetNoData replaces the no-data mask, with the same effects as SetGrid.
func (d *Design) SetNoData(nd classmap.NoData) error {
	d.nodata = nd
	return d.refresh()
}

// String describes the design like "A stratified random probability sample of
// 50 samples for 4 classes".
func (d *Design) String() string {
	return fmt.Sprintf("A stratified random probability sample of %d samples for %d classes", d.total, d.stats.Len())
}

// refresh drops every derived artifact and recomputes statistics.
func (d *Design) refresh() error {
	d.state = StateCreated
	d.stats = classmap.Statistics{}
	d.strata = nil
	d.total = 0
	d.policy = allocation.Proportional
	d.alloc = nil
	d.samples = nil

	stats, err := classmap.Compute(d.grid, d.nodata)
	if err != nil {
		return err
	}
	d.stats = stats
	d.state = StateStatsReady
	return nil
}
