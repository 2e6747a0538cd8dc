package detection

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/warelayout/zonemap/internal/config"
	"github.com/warelayout/zonemap/internal/taxonomy"
)

func TestDetectStructureRackBlock(t *testing.T) {
	// Rack uprights drawn as vertical stripes: moderate, regular edge
	// density over an elongated block.
	img := createTestImage(300, 300, color.White)
	for x := 20; x < 280; x += 12 {
		fillRect(img, x, 60, x+3, 140, color.Black)
	}

	cands, err := DetectStructure(img, config.Default())
	require.NoError(t, err)
	require.NotEmpty(t, cands, "striped block must produce structural candidates")

	foundStorage := false
	for _, c := range cands {
		if c.Source != SourceStructural {
			t.Errorf("source = %q, want structural", c.Source)
		}
		if c.Zone == taxonomy.ZoneRacking || c.Zone == taxonomy.ZoneBulkStorage {
			foundStorage = true
			if c.Confidence <= 0 || c.Confidence > 1 {
				t.Errorf("storage candidate confidence = %.2f, want (0,1]", c.Confidence)
			}
		}
	}
	if !foundStorage {
		t.Error("expected a racking/bulk-storage candidate over the striped block")
	}
}

func TestDetectStructureOpenFloorNeedsStructure(t *testing.T) {
	// Blank plan: no edges anywhere, so no candidates at all. Open floor is
	// only inferred relative to surrounding structure.
	cands, err := DetectStructure(createTestImage(300, 300, color.White), config.Default())
	require.NoError(t, err)
	if len(cands) != 0 {
		t.Errorf("blank plan yielded %d structural candidates, want 0", len(cands))
	}
}

func TestDetectStructureOpenFloorBesideRacks(t *testing.T) {
	img := createTestImage(300, 300, color.White)
	for x := 20; x < 280; x += 12 {
		fillRect(img, x, 20, x+3, 100, color.Black)
	}

	cands, err := DetectStructure(img, config.Default())
	require.NoError(t, err)

	foundOpen := false
	for _, c := range cands {
		if c.Zone == taxonomy.ZoneTravelLane {
			foundOpen = true
			if c.Confidence <= 0 {
				t.Error("open-floor candidate must carry positive confidence")
			}
		}
	}
	if !foundOpen {
		t.Error("expected an open-floor travel-lane candidate below the racks")
	}
}

func TestDetectStructureUniformGrayYieldsNothing(t *testing.T) {
	cands, err := DetectStructure(createTestImage(200, 200, color.Gray{200}), config.Default())
	require.NoError(t, err)
	if len(cands) != 0 {
		t.Errorf("uniform gray plan yielded %d candidates, want 0", len(cands))
	}
}
