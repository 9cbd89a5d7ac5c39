package main

import (
	"bytes"
	"context"
	"flag"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/katalvlaran/stratify/export"
	"github.com/katalvlaran/stratify/internal/monitoring"
	"github.com/katalvlaran/stratify/raster"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

// writeMap writes a 4x5 gray map with codes 1..3 and a no-data column of 255.
func writeMap(t *testing.T, dir string) string {
	t.Helper()
	codes := [][]uint8{
		{1, 1, 1, 2, 255},
		{1, 1, 2, 2, 255},
		{1, 3, 3, 2, 255},
		{1, 1, 3, 3, 255},
	}
	img := image.NewGray(image.Rect(0, 0, 5, 4))
	for y, row := range codes {
		for x, v := range row {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	path := filepath.Join(dir, "map.tif")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, tiff.Encode(f, img, nil))
	require.NoError(t, f.Close())
	return path
}

func TestRun_FullPipeline(t *testing.T) {
	dir := t.TempDir()
	mapPath := writeMap(t, dir)
	require.NoError(t, raster.WriteCategoryNames(mapPath, 1, []string{"Forest", "Water", "Urban", "Masked"}))
	csvPath := filepath.Join(dir, "samples.csv")
	dbPath := filepath.Join(dir, "runs.db")
	chartPath := filepath.Join(dir, "alloc.png")

	var out bytes.Buffer
	err := run(context.Background(), []string{
		"-raster", mapPath, "-mask", "255", "-n", "6", "-policy", "equal",
		"-seed", "11", "-out", csvPath, "-db", dbPath, "-chart", chartPath,
	}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "A stratified random probability sample of 6 samples for 3 classes")
	assert.Contains(t, text, "seed: 11")
	assert.Contains(t, text, "Forest")
	assert.Contains(t, text, "Urban")
	assert.Contains(t, text, "recorded in "+dbPath)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	samples, err := export.ReadCSV(f)
	require.NoError(t, err)
	assert.Len(t, samples, 6)
	for _, s := range samples {
		assert.NotEqual(t, 4, s.Col, "no-data column sampled")
	}

	info, err := os.Stat(chartPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	var list bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-db", dbPath, "-list"}, &list))
	lines := strings.Split(strings.TrimSpace(list.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "4x5")
	assert.Contains(t, lines[1], "equal")
}

func TestRun_SameSeedSameSamples(t *testing.T) {
	dir := t.TempDir()
	mapPath := writeMap(t, dir)

	draw := func() string {
		var out bytes.Buffer
		err := run(context.Background(), []string{
			"-raster", mapPath, "-mask", "255", "-n", "5", "-seed", "3", "-out", "-",
		}, &out)
		require.NoError(t, err)
		return out.String()
	}
	assert.Equal(t, draw(), draw())
}

func TestRun_ConfigFileWithFlagOverride(t *testing.T) {
	dir := t.TempDir()
	mapPath := writeMap(t, dir)
	cfgPath := filepath.Join(dir, "run.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{
		"raster": "`+mapPath+`",
		"nodata": [255],
		"total": 9,
		"policy": "user",
		"user_allocation": [5, 2, 2],
		"seed": 5
	}`), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-config", cfgPath}, &out))
	assert.Contains(t, out.String(), "9 samples for 3 classes")

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"-config", cfgPath, "-n", "3", "-policy", "equal"}, &out))
	assert.Contains(t, out.String(), "3 samples for 3 classes")
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	mapPath := writeMap(t, dir)
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"no raster", []string{"-n", "5"}, "a raster is required"},
		{"no total", []string{"-raster", mapPath}, "total sample size is required"},
		{"bad mask", []string{"-raster", mapPath, "-n", "5", "-mask", "x"}, "-mask"},
		{"bad band", []string{"-raster", mapPath, "-n", "5", "-band", "2"}, "cannot load band 2"},
		{"missing file", []string{"-raster", filepath.Join(dir, "nope.tif"), "-n", "5"}, "nope.tif"},
		{"too small", []string{"-raster", mapPath, "-mask", "255", "-n", "2"}, "smaller than the number of classes"},
		{"over allocation", []string{"-raster", mapPath, "-mask", "255", "-n", "12", "-policy", "user", "-alloc", "2,7,3"}, "class 2"},
		{"list without db", []string{"-list"}, "-list needs -db"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := run(context.Background(), tc.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRun_QuietRestoresLogger(t *testing.T) {
	var lines []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, format)
	})
	t.Cleanup(func() { monitoring.SetLogger(nil) })

	mapPath := writeMap(t, t.TempDir())
	args := []string{"-raster", mapPath, "-mask", "255", "-n", "3", "-seed", "1"}

	require.NoError(t, run(context.Background(), append([]string{"-quiet"}, args...), &bytes.Buffer{}))
	assert.Empty(t, lines, "-quiet must mute the run")

	require.NoError(t, run(context.Background(), args, &bytes.Buffer{}))
	assert.NotEmpty(t, lines, "logger must be restored after a quiet run")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))

	err := run(context.Background(), []string{"-h"}, &bytes.Buffer{})
	require.ErrorIs(t, err, flag.ErrHelp)
	assert.Equal(t, 0, exitCode(err))

	err = run(context.Background(), []string{"-bogus"}, &bytes.Buffer{})
	assert.Equal(t, 2, exitCode(err))

	err = run(context.Background(), []string{"-n", "5"}, &bytes.Buffer{})
	assert.Equal(t, 1, exitCode(err))
}
