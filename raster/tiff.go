package raster

import (
	"bufio"
	"image"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/tiff"

	"github.com/katalvlaran/stratify/classmap"
	"github.com/katalvlaran/stratify/internal/monitoring"
)

// bandReader extracts the code of one band at pixel (x,y).
type bandReader func(x, y int) int

// File is a decoded TIFF raster with its optional PAM metadata.
type File struct {
	path  string
	img   image.Image
	bands []bandReader
	pam   *pamDataset
}

// Open decodes the TIFF at path and loads its "<path>.aux.xml" sidecar when
// present. Failures are reported as *RasterOpenError.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &RasterOpenError{Path: path, Err: err}
	}
	defer f.Close()

	img, err := tiff.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, &RasterOpenError{Path: path, Err: errors.Wrap(err, "decode tiff")}
	}
	bands, err := bandReaders(img)
	if err != nil {
		return nil, &RasterOpenError{Path: path, Err: err}
	}

	pam, err := readPAM(sidecarPath(path))
	if err != nil {
		return nil, &RasterOpenError{Path: path, Err: err}
	}
	if pam == nil {
		monitoring.Logf("raster: no category metadata for %s", path)
	}

	b := img.Bounds()
	monitoring.Logf("raster: opened %s (%dx%d, %d bands)", path, b.Dx(), b.Dy(), len(bands))
	return &File{path: path, img: img, bands: bands, pam: pam}, nil
}

// Path returns the file the raster was read from.
func (f *File) Path() string { return f.path }

// BandCount implements Source.
func (f *File) BandCount() int { return len(f.bands) }

// ReadBand implements Source. Rows follow image y, columns image x.
func (f *File) ReadBand(index int) (*classmap.Grid, error) {
	if err := checkBand(index, len(f.bands)); err != nil {
		return nil, err
	}
	read := f.bands[index-1]
	b := f.img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	cells := make([]int, 0, rows*cols)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cells = append(cells, read(x, y))
		}
	}
	g, err := classmap.FromSlice(rows, cols, cells)
	if err != nil {
		return nil, errors.Wrapf(err, "raster: band %d of %s", index, f.path)
	}
	return g, nil
}

// CategoryNames implements Source.
func (f *File) CategoryNames(index int) ([]string, error) {
	if err := checkBand(index, len(f.bands)); err != nil {
		return nil, err
	}
	return f.pam.categories(index), nil
}

// Close implements Source. The image is fully decoded by Open.
func (f *File) Close() error {
	f.img = nil
	f.bands = nil
	return nil
}

// bandReaders maps a decoded image to per-band code extractors.
func bandReaders(img image.Image) ([]bandReader, error) {
	switch m := img.(type) {
	case *image.Paletted:
		return []bandReader{func(x, y int) int { return int(m.ColorIndexAt(x, y)) }}, nil
	case *image.Gray:
		return []bandReader{func(x, y int) int { return int(m.GrayAt(x, y).Y) }}, nil
	case *image.Gray16:
		return []bandReader{func(x, y int) int { return int(m.Gray16At(x, y).Y) }}, nil
	case *image.RGBA:
		return channels(func(x, y int) [4]int {
			c := m.RGBAAt(x, y)
			return [4]int{int(c.R), int(c.G), int(c.B), int(c.A)}
		}), nil
	case *image.NRGBA:
		return channels(func(x, y int) [4]int {
			c := m.NRGBAAt(x, y)
			return [4]int{int(c.R), int(c.G), int(c.B), int(c.A)}
		}), nil
	case *image.RGBA64:
		return channels(func(x, y int) [4]int {
			c := m.RGBA64At(x, y)
			return [4]int{int(c.R), int(c.G), int(c.B), int(c.A)}
		}), nil
	case *image.NRGBA64:
		return channels(func(x, y int) [4]int {
			c := m.NRGBA64At(x, y)
			return [4]int{int(c.R), int(c.G), int(c.B), int(c.A)}
		}), nil
	}
	return nil, errors.Errorf("unsupported image type %T", img)
}

func channels(at func(x, y int) [4]int) []bandReader {
	out := make([]bandReader, 4)
	for i := range out {
		out[i] = func(x, y int) int { return at(x, y)[i] }
	}
	return out
}
