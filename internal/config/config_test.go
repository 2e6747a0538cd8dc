package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/warelayout/zonemap/internal/taxonomy"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if !cfg.UseColorDetection || !cfg.UseCanny {
		t.Error("both detectors must default to enabled")
	}
	if cfg.DensityWindow != 50 {
		t.Errorf("density_window default = %d, want 50", cfg.DensityWindow)
	}
	if cfg.MinRegionArea != 5000 {
		t.Errorf("min_region_area default = %d, want 5000", cfg.MinRegionArea)
	}
	if cfg.MinLineLength != 30 {
		t.Errorf("min_line_length default = %d, want 30", cfg.MinLineLength)
	}
	if cfg.LineClusterDistance != 100.0 {
		t.Errorf("line_cluster_distance default = %.1f, want 100.0", cfg.LineClusterDistance)
	}
	if !cfg.Phase0.Enabled || cfg.Phase0.FastTrackThreshold != 0.8 {
		t.Errorf("phase0 default = %+v, want enabled at 0.8", cfg.Phase0)
	}

	require.NoError(t, cfg.Validate())
}

func TestPhase0OverrideLeavesRestUntouched(t *testing.T) {
	cfg := Default()
	cfg.Phase0 = DisabledPhase0()

	// Every field except Phase0 must still match the defaults.
	diff := cmp.Diff(Default(), cfg, cmpopts.IgnoreFields(PreprocessingConfig{}, "Phase0"))
	if diff != "" {
		t.Errorf("phase0 override perturbed other fields (-default +got):\n%s", diff)
	}

	if cfg.Phase0.Enabled {
		t.Error("DisabledPhase0 must yield Enabled=false")
	}
	if cfg.Phase0.FastTrackThreshold != 0.8 {
		t.Error("DisabledPhase0 must retain the threshold field")
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PreprocessingConfig)
	}{
		{"threshold above one", func(c *PreprocessingConfig) { c.Phase0.FastTrackThreshold = 1.2 }},
		{"threshold negative", func(c *PreprocessingConfig) { c.Phase0.FastTrackThreshold = -0.1 }},
		{"zero density window", func(c *PreprocessingConfig) { c.DensityWindow = 0 }},
		{"negative region area", func(c *PreprocessingConfig) { c.MinRegionArea = -1 }},
		{"negative line length", func(c *PreprocessingConfig) { c.MinLineLength = -5 }},
		{"zero cluster distance", func(c *PreprocessingConfig) { c.LineClusterDistance = 0 }},
		{"inverted hue band", func(c *PreprocessingConfig) { c.HueBands[0].MinHue = 60; c.HueBands[0].MaxHue = 50 }},
		{"band to unknown zone", func(c *PreprocessingConfig) { c.HueBands[0].Zone = taxonomy.ZoneUnknown }},
		{"inverted density band", func(c *PreprocessingConfig) { c.Density.RackingMin = 0.6; c.Density.RackingMax = 0.5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestHueBandMembership(t *testing.T) {
	band := DefaultHueBands()[0] // orange, 20-50

	if !band.Contains(30, 0.9) {
		t.Error("hue 30 at full saturation must be in the orange band")
	}
	if band.Contains(30, 0.1) {
		t.Error("desaturated pixels must never match a band")
	}
	if band.Contains(60, 0.9) {
		t.Error("hue 60 is outside the orange band")
	}
	if !band.ContainsTight(30) || band.ContainsTight(21) {
		t.Error("tight band must be a strict interior of the loose band")
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zonemap.yaml")
	body := []byte("min_region_area: 1200\nphase0:\n  enabled: false\n  fast_track_threshold: 0.9\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	if cfg.MinRegionArea != 1200 {
		t.Errorf("min_region_area = %d, want 1200 from file", cfg.MinRegionArea)
	}
	if cfg.Phase0.Enabled || cfg.Phase0.FastTrackThreshold != 0.9 {
		t.Errorf("phase0 = %+v, want disabled at 0.9 from file", cfg.Phase0)
	}
	// Untouched fields keep defaults.
	if cfg.DensityWindow != 50 || len(cfg.HueBands) != 3 {
		t.Error("fields absent from the file must keep their defaults")
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("phase0:\n  fast_track_threshold: 3.0\n"), 0o644))

	_, err := LoadFile(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadFile = %v, want ErrInvalidConfig", err)
	}
}
