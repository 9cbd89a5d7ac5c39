// Package design orchestrates a stratified random sample of a classified map.
//
// A Design holds a classification grid and a no-data mask, computes the class
// statistics once, allocates a total sample size across classes with an
// allocation.Policy, and draws the allocated pixels of every class with a
// draw.Strategy.
//
// State machine:
//
//	StateCreated ──New/SetGrid/SetNoData──▶ StateStatsReady
//	StateStatsReady ──Allocate──▶ StateAllocated ──Sample──▶ StateSampled
//	StateSampled ──Sample(new seed)──▶ StateSampled
//	StateAllocated|StateSampled ──Allocate──▶ StateAllocated (samples dropped)
//	any ──SetGrid/SetNoData──▶ StateCreated ──▶ StateStatsReady (or stays on error)
//
// A Design is not safe for concurrent use; callers serialize Allocate and
// Sample. The grid is only read, so several designs may share one grid.
package design
