package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/stratify/allocation"
	"github.com/katalvlaran/stratify/classmap"
	"github.com/katalvlaran/stratify/labels"
)

// WriteTable prints one row per class: map value, description, percent of
// the eligible area and sample allocation. A nil alloc prints "-" in the
// allocation column; otherwise it must have one entry per class.
func WriteTable(w io.Writer, stats classmap.Statistics, alloc allocation.Allocation, names labels.Table) error {
	if alloc != nil && len(alloc) != stats.Len() {
		return fmt.Errorf("report: %d allocations for %d classes", len(alloc), stats.Len())
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Map Value\tDescription\tMap Percent\tSample Allocation")
	for i, c := range stats.Classes {
		n := "-"
		if alloc != nil {
			n = fmt.Sprint(alloc[i])
		}
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\n", c.Code, names.NameFor(c.Code), c.Proportion*100, n)
	}
	if alloc != nil {
		fmt.Fprintf(tw, "\tTotal\t100.00\t%d\n", alloc.Sum())
	}
	return tw.Flush()
}

// WritePatchTable prints the patch structure of each class.
func WritePatchTable(w io.Writer, patches []classmap.PatchStat, names labels.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Map Value\tDescription\tPatches\tLargest Patch")
	for _, p := range patches {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", p.Code, names.NameFor(p.Code), p.Patches, p.Largest)
	}
	return tw.Flush()
}
