package design

import "github.com/katalvlaran/stratify/classmap"

// Sample is one drawn pixel: the output contract consumed by writers.
type Sample struct {
	Code int `json:"class_code"`
	Row  int `json:"row"`
	Col  int `json:"col"`
}

// ClassSample holds the drawn coordinates of one class, in draw order.
type ClassSample struct {
	Code   int
	Coords []classmap.Coord
}

// SampleSet is the result of Design.Sample. Classes follow canonical order.
type SampleSet struct {
	Seed     uint64 // resolved seed; replay with draw.Fixed(Seed)
	Strategy string // draw strategy name
	Classes  []ClassSample
}

// Len returns the total number of samples.
func (s *SampleSet) Len() int {
	n := 0
	for _, c := range s.Classes {
		n += len(c.Coords)
	}
	return n
}

// For returns the coordinates drawn for code, or nil if code is not a class.
func (s *SampleSet) For(code int) []classmap.Coord {
	for _, c := range s.Classes {
		if c.Code == code {
			return c.Coords
		}
	}
	return nil
}

// Flatten returns every sample as (class code, row, col), classes in
// canonical order and coordinates in draw order.
func (s *SampleSet) Flatten() []Sample {
	out := make([]Sample, 0, s.Len())
	for _, c := range s.Classes {
		for _, xy := range c.Coords {
			out = append(out, Sample{Code: c.Code, Row: xy.Row, Col: xy.Col})
		}
	}
	return out
}

// Clone returns a deep copy of s. A nil set clones to nil.
func (s *SampleSet) Clone() *SampleSet {
	if s == nil {
		return nil
	}
	out := &SampleSet{Seed: s.Seed, Strategy: s.Strategy, Classes: make([]ClassSample, len(s.Classes))}
	for i, c := range s.Classes {
		out.Classes[i] = ClassSample{Code: c.Code, Coords: append([]classmap.Coord(nil), c.Coords...)}
	}
	return out
}
