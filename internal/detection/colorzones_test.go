package detection

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/warelayout/zonemap/internal/config"
	"github.com/warelayout/zonemap/internal/taxonomy"
)

func TestDetectColorZonesSingleSquare(t *testing.T) {
	img := createTestImage(200, 200, color.White)
	fillRect(img, 50, 50, 150, 150, paintOrange)

	cands, err := DetectColorZones(img, config.Default())
	require.NoError(t, err)
	require.Len(t, cands, 1)

	c := cands[0]
	if c.Area < 9900 || c.Area > 10100 {
		t.Errorf("area = %d, want 10000 within merge tolerance", c.Area)
	}
	if c.Zone != taxonomy.ZoneBulkStorage {
		t.Errorf("zone = %q, want the orange-mapped type", c.Zone)
	}
	if c.Source != SourceColor {
		t.Errorf("source = %q, want color", c.Source)
	}
	if c.Confidence < 0.9 {
		t.Errorf("confidence = %.2f, want high purity for uniform paint", c.Confidence)
	}
	if c.Bounds.X1 != 50 || c.Bounds.Y1 != 50 || c.Bounds.X2 != 150 || c.Bounds.Y2 != 150 {
		t.Errorf("bounds = %+v, want the painted square", c.Bounds)
	}
}

func TestDetectColorZonesThreeDisjointRegions(t *testing.T) {
	img := createTestImage(300, 300, color.White)
	fillRect(img, 10, 10, 90, 90, paintOrange)
	fillRect(img, 110, 110, 190, 190, paintYellow)
	fillRect(img, 210, 210, 290, 290, paintBlue)

	cands, err := DetectColorZones(img, config.Default())
	require.NoError(t, err)
	require.Len(t, cands, 3)

	seen := make(map[taxonomy.ZoneType]bool)
	for _, c := range cands {
		seen[c.Zone] = true
	}
	if len(seen) != 3 {
		t.Errorf("zone types = %v, want 3 distinct provisional types", seen)
	}
}

func TestDetectColorZonesGrayscaleYieldsNothing(t *testing.T) {
	img := createTestImage(200, 200, color.Gray{128})
	fillRect(img, 50, 50, 150, 150, color.Gray{60})

	cands, err := DetectColorZones(img, config.Default())
	require.NoError(t, err)
	if len(cands) != 0 {
		t.Errorf("zero-saturation image yielded %d color regions, want 0", len(cands))
	}
}

func TestDetectColorZonesGapMerge(t *testing.T) {
	// Two same-type rectangles separated by a 2px gap: one logical zone.
	img := createTestImage(200, 200, color.White)
	fillRect(img, 40, 40, 140, 80, paintOrange)
	fillRect(img, 40, 82, 140, 122, paintOrange)

	cands, err := DetectColorZones(img, config.Default())
	require.NoError(t, err)
	require.Len(t, cands, 1, "2px-gap rectangles must merge into one region")

	c := cands[0]
	wantArea := 100*40 + 100*40
	if c.Area != wantArea {
		t.Errorf("merged area = %d, want %d (gap pixels are not painted)", c.Area, wantArea)
	}
}

func TestDetectColorZonesLShapeMergesToOne(t *testing.T) {
	// Two rectangles sharing a corner region form an L: one region, not two.
	img := createTestImage(200, 200, color.White)
	fillRect(img, 20, 20, 120, 60, paintOrange)  // horizontal bar
	fillRect(img, 20, 20, 60, 120, paintOrange)  // vertical bar

	cands, err := DetectColorZones(img, config.Default())
	require.NoError(t, err)
	require.Len(t, cands, 1, "L-shaped same-type region must be one region")

	c := cands[0]
	wantArea := 100*40 + 40*100 - 40*40 // union minus the shared corner
	if c.Area != wantArea {
		t.Errorf("L-shape area = %d, want %d", c.Area, wantArea)
	}
}

func TestDetectColorZonesNoiseFiltered(t *testing.T) {
	img := createTestImage(200, 200, color.White)
	fillRect(img, 10, 10, 40, 40, paintOrange) // 900px, below MinRegionArea

	cands, err := DetectColorZones(img, config.Default())
	require.NoError(t, err)
	if len(cands) != 0 {
		t.Errorf("sub-threshold blob yielded %d regions, want 0", len(cands))
	}
}

func TestDetectColorZonesSeparateFarRegionsStaySeparate(t *testing.T) {
	cfg := config.Default()
	cfg.MinRegionArea = 1000

	img := createTestImage(200, 200, color.White)
	fillRect(img, 10, 10, 60, 60, paintOrange)
	fillRect(img, 120, 120, 170, 170, paintOrange)

	cands, err := DetectColorZones(img, cfg)
	require.NoError(t, err)
	if len(cands) != 2 {
		t.Errorf("far-apart same-type regions = %d, want 2", len(cands))
	}
}
