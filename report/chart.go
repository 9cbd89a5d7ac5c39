package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/stratify/allocation"
	"github.com/katalvlaran/stratify/classmap"
	"github.com/katalvlaran/stratify/labels"
)

var (
	expectedColor  = color.RGBA{R: 153, G: 153, B: 153, A: 255}
	allocatedColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
)

// AllocationChart draws, per class, the sample count an area-proportional
// design would expect (proportion * total) next to the allocated count.
func AllocationChart(stats classmap.Statistics, alloc allocation.Allocation, names labels.Table) (*plot.Plot, error) {
	if stats.Len() == 0 {
		return nil, fmt.Errorf("report: no classes to chart")
	}
	if len(alloc) != stats.Len() {
		return nil, fmt.Errorf("report: %d allocations for %d classes", len(alloc), stats.Len())
	}

	total := float64(alloc.Sum())
	expected := make(plotter.Values, stats.Len())
	allocated := make(plotter.Values, stats.Len())
	for i, c := range stats.Classes {
		expected[i] = c.Proportion * total
		allocated[i] = float64(alloc[i])
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Sample allocation (%d samples)", alloc.Sum())
	p.Y.Label.Text = "Samples"

	width := vg.Points(12)
	expBars, err := plotter.NewBarChart(expected, width)
	if err != nil {
		return nil, fmt.Errorf("report: expected bars: %w", err)
	}
	expBars.Color = expectedColor
	expBars.LineStyle.Width = vg.Length(0)
	expBars.Offset = -width / 2

	allocBars, err := plotter.NewBarChart(allocated, width)
	if err != nil {
		return nil, fmt.Errorf("report: allocated bars: %w", err)
	}
	allocBars.Color = allocatedColor
	allocBars.LineStyle.Width = vg.Length(0)
	allocBars.Offset = width / 2

	p.Add(expBars, allocBars)
	p.Legend.Add("area proportional", expBars)
	p.Legend.Add("allocated", allocBars)
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	p.NominalX(names.Names(stats.Codes())...)
	return p, nil
}

// SaveChart writes p to path; the format follows the extension (.png, .svg,
// .pdf, ...).
func SaveChart(p *plot.Plot, path string) error {
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save chart %s: %w", path, err)
	}
	return nil
}
