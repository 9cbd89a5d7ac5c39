// Package export writes sample sets for downstream tools.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/stratify/design"
	"github.com/katalvlaran/stratify/labels"
)

// Header is the first record written by WriteCSV.
var Header = []string{"class_code", "class_name", "row", "col"}

// WriteCSV writes one record per sample in SampleSet.Flatten order, naming
// classes through names (Fallback labels when names is nil).
func WriteCSV(w io.Writer, set *design.SampleSet, names labels.Table) error {
	if set == nil {
		return fmt.Errorf("export: nil sample set")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, s := range set.Flatten() {
		rec := []string{
			strconv.Itoa(s.Code),
			names.NameFor(s.Code),
			strconv.Itoa(s.Row),
			strconv.Itoa(s.Col),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("export: write sample: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file produced by WriteCSV back into samples.
func ReadCSV(r io.Reader) ([]design.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("export: read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export: missing header")
	}
	for i, h := range Header {
		if records[0][i] != h {
			return nil, fmt.Errorf("export: unexpected column %q, want %q", records[0][i], h)
		}
	}

	out := make([]design.Sample, 0, len(records)-1)
	for line, rec := range records[1:] {
		var s design.Sample
		var err error
		if s.Code, err = strconv.Atoi(rec[0]); err == nil {
			if s.Row, err = strconv.Atoi(rec[2]); err == nil {
				s.Col, err = strconv.Atoi(rec[3])
			}
		}
		if err != nil {
			return nil, fmt.Errorf("export: record %d: %w", line+2, err)
		}
		out = append(out, s)
	}
	return out, nil
}
