// Package config loads sampler settings from a JSON document.
//
// Every field is optional: a nil pointer (or nil slice) means "not set" and
// the Get* accessors fall back to the package defaults, so partial files are
// safe. Command-line flags override loaded values field by field.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/stratify/allocation"
	"github.com/katalvlaran/stratify/classmap"
	"github.com/katalvlaran/stratify/draw"
	"github.com/katalvlaran/stratify/labels"
)

// maxFileSize caps the size of a config file.
const maxFileSize = 1 * 1024 * 1024

// Defaults used by the Get* accessors.
const (
	DefaultBand         = 1
	DefaultPolicy       = "proportional"
	DefaultStrategy     = "without-replacement"
	DefaultCategoryMode = "indexed"
	DefaultConnectivity = 8
)

// SamplerConfig describes one sampling run.
type SamplerConfig struct {
	// Input
	Raster *string `json:"raster,omitempty"`
	Band   *int    `json:"band,omitempty"` // 1-based
	NoData []int   `json:"nodata,omitempty"`

	// Design
	Total          *int    `json:"total,omitempty"`
	Policy         *string `json:"policy,omitempty"` // proportional | equal | user
	UserAllocation []int   `json:"user_allocation,omitempty"`
	Seed           *uint64 `json:"seed,omitempty"` // nil draws an entropy seed
	Strategy       *string `json:"strategy,omitempty"`

	// Description
	CategoryMode *string `json:"category_mode,omitempty"` // indexed | positional
	Connectivity *int    `json:"connectivity,omitempty"`  // 4 | 8

	// Output
	Database *string `json:"database,omitempty"`
	CSV      *string `json:"csv,omitempty"`
	Chart    *string `json:"chart,omitempty"`
}

func ptrInt(v int) *int          { return &v }
func ptrString(v string) *string { return &v }

// Defaults returns a config with every defaulted field set explicitly.
func Defaults() *SamplerConfig {
	return &SamplerConfig{
		Band:         ptrInt(DefaultBand),
		Policy:       ptrString(DefaultPolicy),
		Strategy:     ptrString(DefaultStrategy),
		CategoryMode: ptrString(DefaultCategoryMode),
		Connectivity: ptrInt(DefaultConnectivity),
	}
}

// Load reads a SamplerConfig from a .json file of at most 1 MiB and
// validates it.
func Load(path string) (*SamplerConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &SamplerConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields that are set.
func (c *SamplerConfig) Validate() error {
	if c.Raster != nil && strings.TrimSpace(*c.Raster) == "" {
		return fmt.Errorf("raster must not be empty")
	}
	if c.Band != nil && *c.Band < 1 {
		return fmt.Errorf("band must be >= 1, got %d", *c.Band)
	}
	if c.Total != nil && *c.Total < 1 {
		return fmt.Errorf("total must be >= 1, got %d", *c.Total)
	}
	if c.Policy != nil {
		p, err := allocation.ParsePolicy(*c.Policy)
		if err != nil {
			return err
		}
		if p == allocation.UserSpecified && c.UserAllocation == nil {
			return fmt.Errorf("policy %q requires user_allocation", *c.Policy)
		}
	}
	for i, v := range c.UserAllocation {
		if v < 0 {
			return fmt.Errorf("user_allocation[%d] must be non-negative, got %d", i, v)
		}
	}
	if c.Strategy != nil {
		if _, err := draw.ParseStrategy(*c.Strategy); err != nil {
			return err
		}
	}
	if c.CategoryMode != nil {
		if _, err := labels.ParseMode(*c.CategoryMode); err != nil {
			return err
		}
	}
	if c.Connectivity != nil && *c.Connectivity != 4 && *c.Connectivity != 8 {
		return fmt.Errorf("connectivity must be 4 or 8, got %d", *c.Connectivity)
	}
	return nil
}

// GetRaster returns the raster path, or "".
func (c *SamplerConfig) GetRaster() string {
	if c.Raster == nil {
		return ""
	}
	return *c.Raster
}

// GetBand returns the 1-based band index.
func (c *SamplerConfig) GetBand() int {
	if c.Band == nil {
		return DefaultBand
	}
	return *c.Band
}

// GetNoData returns the no-data mask.
func (c *SamplerConfig) GetNoData() classmap.NoData {
	return classmap.MaskValues(c.NoData...)
}

// GetTotal returns the requested sample size, or 0 when unset.
func (c *SamplerConfig) GetTotal() int {
	if c.Total == nil {
		return 0
	}
	return *c.Total
}

// GetPolicy returns the allocation policy. Invalid names fall back to the default.
func (c *SamplerConfig) GetPolicy() allocation.Policy {
	if c.Policy != nil {
		if p, err := allocation.ParsePolicy(*c.Policy); err == nil {
			return p
		}
	}
	return allocation.Proportional
}

// GetSeed returns a fixed seed when one is configured, otherwise an entropy seed.
func (c *SamplerConfig) GetSeed() draw.Seed {
	if c.Seed == nil {
		return draw.Entropy()
	}
	return draw.Fixed(*c.Seed)
}

// GetStrategy returns the draw strategy.
func (c *SamplerConfig) GetStrategy() draw.Strategy {
	if c.Strategy != nil {
		if s, err := draw.ParseStrategy(*c.Strategy); err == nil {
			return s
		}
	}
	return draw.Default
}

// GetCategoryMode returns the category reconciliation mode.
func (c *SamplerConfig) GetCategoryMode() labels.Mode {
	if c.CategoryMode != nil {
		if m, err := labels.ParseMode(*c.CategoryMode); err == nil {
			return m
		}
	}
	return labels.ModeIndexed
}

// GetConnectivity returns the patch connectivity.
func (c *SamplerConfig) GetConnectivity() classmap.Connectivity {
	if c.Connectivity != nil && *c.Connectivity == 4 {
		return classmap.Conn4
	}
	return classmap.Conn8
}

// GetDatabase returns the run database path, or "".
func (c *SamplerConfig) GetDatabase() string {
	if c.Database == nil {
		return ""
	}
	return *c.Database
}

// GetCSV returns the CSV output path, or "".
func (c *SamplerConfig) GetCSV() string {
	if c.CSV == nil {
		return ""
	}
	return *c.CSV
}

// GetChart returns the chart output path, or "".
func (c *SamplerConfig) GetChart() string {
	if c.Chart == nil {
		return ""
	}
	return *c.Chart
}

// ParseIntList parses integers separated by commas and/or whitespace, as in
// "255, 0 3". An empty or blank string yields nil.
func ParseIntList(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q in list %q", f, s)
		}
		out[i] = v
	}
	return out, nil
}
