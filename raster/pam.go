package raster

import (
	"encoding/xml"
	"os"

	"github.com/pkg/errors"
)

// pamDataset is a GDAL PAM sidecar (.aux.xml). Only band category names are
// interpreted; every other element and attribute is kept verbatim so a
// rewrite preserves metadata, no-data values, color tables and statistics.
type pamDataset struct {
	XMLName xml.Name   `xml:"PAMDataset"`
	Attrs   []xml.Attr `xml:",any,attr"`
	Other   []pamElem  `xml:",any"`
	Bands   []pamBand  `xml:"PAMRasterBand"`
}

type pamBand struct {
	Band       int        `xml:"band,attr"`
	Attrs      []xml.Attr `xml:",any,attr"`
	Other      []pamElem  `xml:",any"`
	Categories []string   `xml:"CategoryNames>Category"`
}

// pamElem is an uninterpreted element carried through unchanged.
type pamElem struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   []byte     `xml:",innerxml"`
}

func sidecarPath(path string) string {
	return path + ".aux.xml"
}

// readPAM parses the sidecar at path. A missing file yields nil, nil.
func readPAM(path string) (*pamDataset, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read category sidecar")
	}
	var ds pamDataset
	if err := xml.Unmarshal(data, &ds); err != nil {
		return nil, errors.Wrapf(err, "parse category sidecar %s", path)
	}
	return &ds, nil
}

// categories returns the names of band, or nil.
func (p *pamDataset) categories(band int) []string {
	if p == nil {
		return nil
	}
	for _, b := range p.Bands {
		if b.Band == band && len(b.Categories) > 0 {
			return append([]string(nil), b.Categories...)
		}
	}
	return nil
}

// WriteCategoryNames stores names as the category table of band in the PAM
// sidecar of the raster at path, keeping the other bands' entries.
func WriteCategoryNames(path string, band int, names []string) error {
	side := sidecarPath(path)
	ds, err := readPAM(side)
	if err != nil {
		return err
	}
	if ds == nil {
		ds = &pamDataset{}
	}

	replaced := false
	for i := range ds.Bands {
		if ds.Bands[i].Band == band {
			ds.Bands[i].Categories = names
			replaced = true
		}
	}
	if !replaced {
		ds.Bands = append(ds.Bands, pamBand{Band: band, Categories: names})
	}

	data, err := xml.MarshalIndent(ds, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode category sidecar")
	}
	return errors.Wrap(os.WriteFile(side, append(data, '\n'), 0o644), "write category sidecar")
}
