package raster

import "github.com/katalvlaran/stratify/classmap"

// Source is a raster opened for reading. Band indices are 1-based.
type Source interface {
	// BandCount returns the number of bands.
	BandCount() int
	// ReadBand returns band index as a grid of class codes.
	ReadBand(index int) (*classmap.Grid, error)
	// CategoryNames returns the category names of band index, or nil when
	// the raster declares none.
	CategoryNames(index int) ([]string, error)
	// Close releases the source.
	Close() error
}

// Memory is a Source over in-memory grids.
type Memory struct {
	bands []*classmap.Grid
	names [][]string
}

// NewMemory returns a Source over bands. names[i], when present, holds the
// category names of band i+1.
func NewMemory(bands []*classmap.Grid, names [][]string) *Memory {
	return &Memory{bands: bands, names: names}
}

// BandCount implements Source.
func (m *Memory) BandCount() int { return len(m.bands) }

// ReadBand implements Source.
func (m *Memory) ReadBand(index int) (*classmap.Grid, error) {
	if err := checkBand(index, len(m.bands)); err != nil {
		return nil, err
	}
	return m.bands[index-1], nil
}

// CategoryNames implements Source.
func (m *Memory) CategoryNames(index int) ([]string, error) {
	if err := checkBand(index, len(m.bands)); err != nil {
		return nil, err
	}
	if index-1 >= len(m.names) || len(m.names[index-1]) == 0 {
		return nil, nil
	}
	return append([]string(nil), m.names[index-1]...), nil
}

// Close implements Source.
func (m *Memory) Close() error { return nil }
