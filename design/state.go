package design

import "fmt"

// State is the lifecycle stage of a Design.
type State int

const (
	// StateCreated: no valid statistics; nothing can be allocated.
	StateCreated State = iota
	// StateStatsReady: statistics computed, no allocation yet.
	StateStatsReady
	// StateAllocated: allocation computed, no sample drawn for it yet.
	StateAllocated
	// StateSampled: a SampleSet matching the current allocation is available.
	StateSampled
)

// String returns a lower-case state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStatsReady:
		return "stats-ready"
	case StateAllocated:
		return "allocated"
	case StateSampled:
		return "sampled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
