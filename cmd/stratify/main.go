// Command stratify draws a stratified random sample from a classified raster.
//
// Usage:
//
//	stratify -raster landcover.tif -n 500 [-policy proportional|equal|user]
//	         [-alloc "100, 200, 200"] [-mask "0, 255"] [-band 1] [-seed 42]
//	         [-out samples.csv] [-chart alloc.png] [-db runs.db]
//	stratify -db runs.db -list
//
// Settings may also come from a JSON file given with -config; flags set on
// the command line override it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/katalvlaran/stratify/classmap"
	"github.com/katalvlaran/stratify/config"
	"github.com/katalvlaran/stratify/design"
	"github.com/katalvlaran/stratify/export"
	"github.com/katalvlaran/stratify/internal/monitoring"
	"github.com/katalvlaran/stratify/labels"
	"github.com/katalvlaran/stratify/raster"
	"github.com/katalvlaran/stratify/report"
	"github.com/katalvlaran/stratify/store"
)

func main() {
	os.Exit(exitCode(run(context.Background(), os.Args[1:], os.Stdout)))
}

// exitCode maps a run error to the process status. -h is a success.
func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		log.Print(err)
		return 2
	}
	log.Print(err)
	return 1
}

// errUsage marks flag values that fail to parse.
var errUsage = errors.New("usage")

// options are the flags that are not part of SamplerConfig.
type options struct {
	configPath string
	list       bool
	quiet      bool
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.quiet {
		prev := monitoring.Logf
		monitoring.SetLogger(nil)
		defer monitoring.SetLogger(prev)
	}

	if opts.list {
		return listRuns(ctx, cfg.GetDatabase(), stdout)
	}
	if cfg.GetRaster() == "" {
		return fmt.Errorf("a raster is required (-raster or \"raster\" in -config)")
	}
	if cfg.GetTotal() < 1 {
		return fmt.Errorf("a total sample size is required (-n or \"total\" in -config)")
	}
	return sample(ctx, cfg, stdout)
}

func parseFlags(args []string) (*config.SamplerConfig, options, error) {
	var opts options
	fs := flag.NewFlagSet("stratify", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "JSON config file")
	fs.BoolVar(&opts.list, "list", false, "list the runs recorded in -db and exit")
	fs.BoolVar(&opts.quiet, "quiet", false, "mute diagnostic logging")

	rasterPath := fs.String("raster", "", "classified map (TIFF)")
	band := fs.Int("band", config.DefaultBand, "band index, starting at 1")
	mask := fs.String("mask", "", "no-data values, comma or space separated")
	total := fs.Int("n", 0, "total sample size")
	policy := fs.String("policy", config.DefaultPolicy, "allocation policy: proportional, equal or user")
	alloc := fs.String("alloc", "", "per-class sample counts for -policy user, in ascending class order")
	seed := fs.Uint64("seed", 0, "fixed random seed; omit for a fresh seed")
	strategy := fs.String("strategy", config.DefaultStrategy, "draw strategy: without-replacement or partial-shuffle")
	mode := fs.String("categories", config.DefaultCategoryMode, "category name matching: indexed or positional")
	conn := fs.Int("connectivity", config.DefaultConnectivity, "patch connectivity: 4 or 8")
	out := fs.String("out", "", "write samples as CSV to this file (- for stdout)")
	chart := fs.String("chart", "", "write an allocation chart (.png, .svg, .pdf)")
	db := fs.String("db", "", "record the run in this SQLite database")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, opts, err
		}
		return nil, opts, fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg := config.Defaults()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, opts, err
		}
		cfg = loaded
	}

	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "raster":
			cfg.Raster = rasterPath
		case "band":
			cfg.Band = band
		case "mask":
			vs, err := config.ParseIntList(*mask)
			if err != nil {
				parseErr = fmt.Errorf("%w: -mask: %v", errUsage, err)
			}
			cfg.NoData = vs
		case "n":
			cfg.Total = total
		case "policy":
			cfg.Policy = policy
		case "alloc":
			vs, err := config.ParseIntList(*alloc)
			if err != nil {
				parseErr = fmt.Errorf("%w: -alloc: %v", errUsage, err)
			}
			cfg.UserAllocation = vs
		case "seed":
			cfg.Seed = seed
		case "strategy":
			cfg.Strategy = strategy
		case "categories":
			cfg.CategoryMode = mode
		case "connectivity":
			cfg.Connectivity = conn
		case "out":
			cfg.CSV = out
		case "chart":
			cfg.Chart = chart
		case "db":
			cfg.Database = db
		}
	})
	if parseErr != nil {
		return nil, opts, parseErr
	}
	if err := cfg.Validate(); err != nil {
		return nil, opts, err
	}
	return cfg, opts, nil
}

func sample(ctx context.Context, cfg *config.SamplerConfig, stdout io.Writer) error {
	src, err := raster.Open(cfg.GetRaster())
	if err != nil {
		return err
	}
	defer src.Close()

	grid, err := src.ReadBand(cfg.GetBand())
	if err != nil {
		return err
	}
	names, err := src.CategoryNames(cfg.GetBand())
	if err != nil {
		return err
	}
	nd := cfg.GetNoData()
	table := labels.Reconcile(classmap.Distinct(grid), names, cfg.GetCategoryMode())

	d, err := design.New(grid, nd, design.WithStrategy(cfg.GetStrategy()))
	if err != nil {
		return err
	}
	if _, err := d.Allocate(cfg.GetTotal(), cfg.GetPolicy(), cfg.UserAllocation); err != nil {
		return err
	}
	set, err := d.Sample(cfg.GetSeed())
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, d)
	fmt.Fprintf(stdout, "no-data: %s  seed: %d  strategy: %s\n\n", nd, set.Seed, set.Strategy)
	if err := report.WriteTable(stdout, d.Statistics(), d.Allocation(), table); err != nil {
		return err
	}
	patches, err := classmap.Patches(grid, nd, cfg.GetConnectivity())
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	if err := report.WritePatchTable(stdout, patches, table); err != nil {
		return err
	}

	if path := cfg.GetCSV(); path != "" {
		if err := writeSamples(path, set, table, stdout); err != nil {
			return err
		}
	}
	if path := cfg.GetChart(); path != "" {
		p, err := report.AllocationChart(d.Statistics(), d.Allocation(), table)
		if err != nil {
			return err
		}
		if err := report.SaveChart(p, path); err != nil {
			return err
		}
		monitoring.Logf("Wrote allocation chart to %s", path)
	}
	if path := cfg.GetDatabase(); path != "" {
		id, err := recordRun(ctx, path, d)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nrun %s recorded in %s\n", id, path)
	}
	return nil
}

func writeSamples(path string, set *design.SampleSet, table labels.Table, stdout io.Writer) error {
	if path == "-" {
		fmt.Fprintln(stdout)
		return export.WriteCSV(stdout, set, table)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(f, set, table); err != nil {
		f.Close()
		return err
	}
	monitoring.Logf("Wrote %d samples to %s", set.Len(), path)
	return f.Close()
}

func recordRun(ctx context.Context, path string, d *design.Design) (string, error) {
	db, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	run, err := store.NewRun(d)
	if err != nil {
		return "", err
	}
	if err := store.NewRunStore(db).InsertRun(ctx, run); err != nil {
		return "", err
	}
	return run.RunID, nil
}

func listRuns(ctx context.Context, path string, stdout io.Writer) error {
	if path == "" {
		return fmt.Errorf("-list needs -db")
	}
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := store.NewRunStore(db).ListRuns(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Run\tCreated\tGrid\tPolicy\tTotal\tSeed")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%s\t%d\t%d\n",
			r.RunID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Rows, r.Cols, r.Policy, r.Total, r.Seed)
	}
	return tw.Flush()
}
