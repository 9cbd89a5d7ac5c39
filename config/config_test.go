package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stratify/allocation"
	"github.com/katalvlaran/stratify/classmap"
	"github.com/katalvlaran/stratify/config"
	"github.com/katalvlaran/stratify/draw"
	"github.com/katalvlaran/stratify/labels"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, "run.json", `{
		"raster": "landcover.tif",
		"band": 2,
		"nodata": [255, 0],
		"total": 50,
		"policy": "user",
		"user_allocation": [10, 20, 20],
		"seed": 42,
		"strategy": "partial-shuffle",
		"category_mode": "positional",
		"connectivity": 4,
		"database": "runs.db",
		"csv": "samples.csv",
		"chart": "alloc.png"
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "landcover.tif", cfg.GetRaster())
	assert.Equal(t, 2, cfg.GetBand())
	assert.Equal(t, []int{0, 255}, cfg.GetNoData().Values())
	assert.Equal(t, 50, cfg.GetTotal())
	assert.Equal(t, allocation.UserSpecified, cfg.GetPolicy())
	assert.Equal(t, []int{10, 20, 20}, cfg.UserAllocation)
	assert.Equal(t, draw.Fixed(42), cfg.GetSeed())
	assert.Equal(t, "partial-shuffle", cfg.GetStrategy().Name())
	assert.Equal(t, labels.ModePositional, cfg.GetCategoryMode())
	assert.Equal(t, classmap.Conn4, cfg.GetConnectivity())
	assert.Equal(t, "runs.db", cfg.GetDatabase())
	assert.Equal(t, "samples.csv", cfg.GetCSV())
	assert.Equal(t, "alloc.png", cfg.GetChart())
}

func TestLoad_PartialUsesDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "partial.json", `{"total": 10}`))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultBand, cfg.GetBand())
	assert.False(t, cfg.GetNoData().IsSet())
	assert.Equal(t, allocation.Proportional, cfg.GetPolicy())
	assert.False(t, cfg.GetSeed().IsFixed())
	assert.Equal(t, draw.Default.Name(), cfg.GetStrategy().Name())
	assert.Equal(t, labels.ModeIndexed, cfg.GetCategoryMode())
	assert.Equal(t, classmap.Conn8, cfg.GetConnectivity())
	assert.Empty(t, cfg.GetRaster())
	assert.Empty(t, cfg.GetDatabase())
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name, file, body, want string
	}{
		{"extension", "run.yaml", `{}`, ".json extension"},
		{"syntax", "bad.json", `{"total": }`, "parse config JSON"},
		{"band", "band.json", `{"band": 0}`, "band must be >= 1"},
		{"total", "total.json", `{"total": 0}`, "total must be >= 1"},
		{"policy", "policy.json", `{"policy": "random"}`, "unknown allocation policy"},
		{"user without vector", "user.json", `{"policy": "user"}`, "requires user_allocation"},
		{"negative user", "neg.json", `{"user_allocation": [1, -1]}`, "user_allocation[1]"},
		{"strategy", "strategy.json", `{"strategy": "reservoir"}`, "unknown strategy"},
		{"mode", "mode.json", `{"category_mode": "fuzzy"}`, "unknown mode"},
		{"connectivity", "conn.json", `{"connectivity": 6}`, "connectivity must be 4 or 8"},
		{"raster", "raster.json", `{"raster": "  "}`, "raster must not be empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tc.file, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_TooLarge(t *testing.T) {
	body := `{"raster": "` + strings.Repeat("x", 1<<20) + `"}`
	_, err := config.Load(writeConfig(t, "big.json", body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestLoad_Missing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaults_Validate(t *testing.T) {
	cfg := config.Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.DefaultBand, *cfg.Band)
	assert.Equal(t, config.DefaultPolicy, *cfg.Policy)
	assert.Equal(t, config.DefaultConnectivity, *cfg.Connectivity)
}

func TestParseIntList(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"", nil},
		{"   ", nil},
		{"255", []int{255}},
		{"255, 0 3", []int{255, 0, 3}},
		{"1,2,,3", []int{1, 2, 3}},
		{"-1\t4", []int{-1, 4}},
	}
	for _, tc := range cases {
		got, err := config.ParseIntList(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := config.ParseIntList("1, two")
	assert.ErrorContains(t, err, `"two"`)
}
