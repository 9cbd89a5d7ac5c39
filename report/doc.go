// Package report renders class statistics and allocations for people.
//
// WriteTable prints the map table (value, description, percent of eligible
// area, sample allocation); WritePatchTable prints patch counts from
// classmap.Patches. AllocationChart builds a gonum/plot bar chart comparing
// the allocation with its area-proportional expectation, and SaveChart
// writes it as PNG, SVG or PDF.
package report
