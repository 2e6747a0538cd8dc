// Package config defines the immutable run configuration for the zone
// detection pipeline: detector toggles, noise thresholds, the hue-band and
// density policy tables, and the Phase 0 fast-track gate settings.
//
// Configurations are plain value structs. Run takes its config by value, so
// a constructed configuration cannot be perturbed by a pipeline run; callers
// that want variations copy and modify before validating.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/warelayout/zonemap/internal/taxonomy"
)

// ErrInvalidConfig classifies configuration construction failures. Wrapped
// errors carry the offending field; use errors.Is to test.
var ErrInvalidConfig = errors.New("invalid configuration")

// Phase0Config controls the fast-track gate in front of the full pipeline.
type Phase0Config struct {
	// Enabled turns the gate on. When false every run falls through to the
	// full pipeline unconditionally.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// FastTrackThreshold is the minimum coarse-signal confidence, in [0,1],
	// at which the gate short-circuits the full pipeline. Not load-bearing
	// when Enabled is false.
	FastTrackThreshold float64 `yaml:"fast_track_threshold" json:"fast_track_threshold"`
}

// DefaultPhase0 returns the gate defaults: enabled with threshold 0.8.
func DefaultPhase0() Phase0Config {
	return Phase0Config{Enabled: true, FastTrackThreshold: 0.8}
}

// DisabledPhase0 returns a gate configuration that never short-circuits.
// The threshold field keeps its default value but carries no meaning.
func DisabledPhase0() Phase0Config {
	return Phase0Config{Enabled: false, FastTrackThreshold: 0.8}
}

// HueBand maps a hue range to a provisional zone type.
//
// Hue is in degrees on the 0-360 color wheel. A pixel belongs to the band
// when MinHue <= h < MaxHue and its saturation is at least MinSaturation.
// The tight sub-band [TightMinHue, TightMaxHue) is used for confidence
// scoring: the closer a region's pixels sit to the band core, the purer the
// floor marking and the higher the confidence.
type HueBand struct {
	Name          string            `yaml:"name" json:"name"`
	MinHue        float64           `yaml:"min_hue" json:"min_hue"`
	MaxHue        float64           `yaml:"max_hue" json:"max_hue"`
	TightMinHue   float64           `yaml:"tight_min_hue" json:"tight_min_hue"`
	TightMaxHue   float64           `yaml:"tight_max_hue" json:"tight_max_hue"`
	MinSaturation float64           `yaml:"min_saturation" json:"min_saturation"`
	Zone          taxonomy.ZoneType `yaml:"zone" json:"zone"`
}

// Contains reports whether a hue/saturation pair falls in the loose band.
func (b HueBand) Contains(h, s float64) bool {
	return s >= b.MinSaturation && h >= b.MinHue && h < b.MaxHue
}

// ContainsTight reports whether a hue falls in the tight sub-band.
func (b HueBand) ContainsTight(h float64) bool {
	return h >= b.TightMinHue && h < b.TightMaxHue
}

// DefaultHueBands returns the stock floor-marking palette. Warehouse paint
// conventions vary by site, so these are policy defaults, not constants of
// the algorithm.
func DefaultHueBands() []HueBand {
	return []HueBand{
		{
			Name:          "orange",
			MinHue:        20,
			MaxHue:        50,
			TightMinHue:   25,
			TightMaxHue:   45,
			MinSaturation: 0.35,
			Zone:          taxonomy.ZoneBulkStorage,
		},
		{
			Name:          "yellow",
			MinHue:        50,
			MaxHue:        70,
			TightMinHue:   54,
			TightMaxHue:   66,
			MinSaturation: 0.35,
			Zone:          taxonomy.ZoneStagingArea,
		},
		{
			Name:          "blue",
			MinHue:        200,
			MaxHue:        260,
			TightMinHue:   210,
			TightMaxHue:   250,
			MinSaturation: 0.35,
			Zone:          taxonomy.ZoneReceiving,
		},
	}
}

// DensityBand holds the structural detector's edge-density policy.
//
// Window densities inside [RackingMin, RackingMax] mark storage structure
// (rack uprights, shelving). Densities at or below OpenFloorMax mark open
// floor, which only becomes a travel-lane candidate when the plan carries
// structure elsewhere.
type DensityBand struct {
	RackingMin   float64 `yaml:"racking_min" json:"racking_min"`
	RackingMax   float64 `yaml:"racking_max" json:"racking_max"`
	OpenFloorMax float64 `yaml:"open_floor_max" json:"open_floor_max"`
}

// DefaultDensityBand returns thresholds tuned for 1px-line floor plans.
func DefaultDensityBand() DensityBand {
	return DensityBand{RackingMin: 0.10, RackingMax: 0.55, OpenFloorMax: 0.02}
}

// PreprocessingConfig is the immutable configuration for one pipeline run.
type PreprocessingConfig struct {
	// UseColorDetection enables the color-boundary detector.
	UseColorDetection bool `yaml:"use_color_detection" json:"use_color_detection"`

	// UseCanny enables the structural edge/density detector.
	UseCanny bool `yaml:"use_canny" json:"use_canny"`

	// UseLabelOCR enables post-adjudication floor-label reading. Requires a
	// cgo build with Tesseract; a no-op otherwise.
	UseLabelOCR bool `yaml:"use_label_ocr" json:"use_label_ocr"`

	// DensityWindow is the side, in pixels, of the local edge-density
	// sampling window.
	DensityWindow int `yaml:"density_window" json:"density_window"`

	// MinRegionArea discards candidate regions below this pixel area as
	// noise.
	MinRegionArea int `yaml:"min_region_area" json:"min_region_area"`

	// MinLineLength discards raw line segments shorter than this before
	// clustering.
	MinLineLength int `yaml:"min_line_length" json:"min_line_length"`

	// LineClusterDistance is the maximum perpendicular offset and endpoint
	// gap, in pixels, for two segments to join the same cluster.
	LineClusterDistance float64 `yaml:"line_cluster_distance" json:"line_cluster_distance"`

	// AngleToleranceDeg is the maximum orientation difference for two
	// segments to be considered near-parallel.
	AngleToleranceDeg float64 `yaml:"angle_tolerance_deg" json:"angle_tolerance_deg"`

	// MergeGap is the maximum pixel gap at which two same-type color
	// components merge into one region. Models zones painted as multiple
	// abutting rectangles.
	MergeGap int `yaml:"merge_gap" json:"merge_gap"`

	// HueBands is the color-marking policy table.
	HueBands []HueBand `yaml:"hue_bands" json:"hue_bands"`

	// Density is the structural detector's edge-density policy.
	Density DensityBand `yaml:"density" json:"density"`

	// Phase0 configures the fast-track gate.
	Phase0 Phase0Config `yaml:"phase0" json:"phase0"`
}

// Default returns the stock configuration: both detectors on, density window
// 50, minimum region area 5000, minimum line length 30, cluster distance
// 100, gate enabled at threshold 0.8.
func Default() PreprocessingConfig {
	return PreprocessingConfig{
		UseColorDetection:   true,
		UseCanny:            true,
		UseLabelOCR:         false,
		DensityWindow:       50,
		MinRegionArea:       5000,
		MinLineLength:       30,
		LineClusterDistance: 100.0,
		AngleToleranceDeg:   10.0,
		MergeGap:            4,
		HueBands:            DefaultHueBands(),
		Density:             DefaultDensityBand(),
		Phase0:              DefaultPhase0(),
	}
}

// Validate rejects out-of-range settings at construction time so the
// pipeline never has to defend against them mid-run. All failures wrap
// ErrInvalidConfig.
func (c PreprocessingConfig) Validate() error {
	if c.Phase0.FastTrackThreshold < 0 || c.Phase0.FastTrackThreshold > 1 {
		return fmt.Errorf("%w: fast_track_threshold %.3f outside [0,1]", ErrInvalidConfig, c.Phase0.FastTrackThreshold)
	}
	if c.DensityWindow <= 0 {
		return fmt.Errorf("%w: density_window must be positive, got %d", ErrInvalidConfig, c.DensityWindow)
	}
	if c.MinRegionArea < 0 {
		return fmt.Errorf("%w: min_region_area must not be negative, got %d", ErrInvalidConfig, c.MinRegionArea)
	}
	if c.MinLineLength < 0 {
		return fmt.Errorf("%w: min_line_length must not be negative, got %d", ErrInvalidConfig, c.MinLineLength)
	}
	if c.LineClusterDistance <= 0 {
		return fmt.Errorf("%w: line_cluster_distance must be positive, got %.1f", ErrInvalidConfig, c.LineClusterDistance)
	}
	if c.AngleToleranceDeg <= 0 || c.AngleToleranceDeg >= 90 {
		return fmt.Errorf("%w: angle_tolerance_deg %.1f outside (0,90)", ErrInvalidConfig, c.AngleToleranceDeg)
	}
	if c.MergeGap < 0 {
		return fmt.Errorf("%w: merge_gap must not be negative, got %d", ErrInvalidConfig, c.MergeGap)
	}
	for _, b := range c.HueBands {
		if b.MinHue < 0 || b.MaxHue > 360 || b.MinHue >= b.MaxHue {
			return fmt.Errorf("%w: hue band %q range [%.0f,%.0f) invalid", ErrInvalidConfig, b.Name, b.MinHue, b.MaxHue)
		}
		if b.TightMinHue < b.MinHue || b.TightMaxHue > b.MaxHue {
			return fmt.Errorf("%w: hue band %q tight range outside loose range", ErrInvalidConfig, b.Name)
		}
		if b.MinSaturation < 0 || b.MinSaturation > 1 {
			return fmt.Errorf("%w: hue band %q min_saturation %.2f outside [0,1]", ErrInvalidConfig, b.Name, b.MinSaturation)
		}
		if b.Zone == taxonomy.ZoneUnknown || taxonomy.Parse(string(b.Zone)) == taxonomy.ZoneUnknown {
			return fmt.Errorf("%w: hue band %q maps to unrecognized zone %q", ErrInvalidConfig, b.Name, b.Zone)
		}
	}
	d := c.Density
	if d.RackingMin < 0 || d.RackingMax > 1 || d.RackingMin >= d.RackingMax {
		return fmt.Errorf("%w: racking density band [%.2f,%.2f] invalid", ErrInvalidConfig, d.RackingMin, d.RackingMax)
	}
	if d.OpenFloorMax < 0 || d.OpenFloorMax >= d.RackingMin {
		return fmt.Errorf("%w: open_floor_max %.2f must sit below racking_min", ErrInvalidConfig, d.OpenFloorMax)
	}
	return nil
}

// LoadFile reads a YAML configuration file over the defaults.
//
// Fields absent from the file keep their default values; the merged result
// is validated before being returned.
func LoadFile(path string) (PreprocessingConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
