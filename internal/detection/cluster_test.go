package detection

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/warelayout/zonemap/internal/config"
	"github.com/warelayout/zonemap/internal/imaging"
	"github.com/warelayout/zonemap/internal/taxonomy"
)

// seg builds a segment with derived length and angle, the way the Hough
// primitive reports them.
func seg(x1, y1, x2, y2 int) imaging.Segment {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return imaging.Segment{
		Start:        imaging.Point{X: x1, Y: y1},
		End:          imaging.Point{X: x2, Y: y2},
		Length:       math.Hypot(dx, dy),
		AngleDegrees: math.Atan2(dy, dx) * 180 / math.Pi,
	}
}

func TestClusterSegmentsGroupsParallelNeighbors(t *testing.T) {
	segments := []imaging.Segment{
		seg(0, 100, 300, 100),
		seg(0, 120, 300, 120),
	}

	cands := ClusterSegments(segments, config.Default())
	if len(cands) != 1 {
		t.Fatalf("got %d clusters, want 1", len(cands))
	}
	c := cands[0]
	if c.Zone != taxonomy.ZoneAislePath {
		t.Errorf("long narrow envelope classified %q, want aisle_path", c.Zone)
	}
	if c.Source != SourceLineCluster {
		t.Errorf("source = %q, want line-cluster", c.Source)
	}
	if c.Confidence <= 0 || c.Confidence > 1 {
		t.Errorf("confidence = %.2f, want (0,1]", c.Confidence)
	}
}

func TestClusterSegmentsCompactEnvelopeIsTravelLane(t *testing.T) {
	segments := []imaging.Segment{
		seg(0, 0, 100, 0),
		seg(0, 30, 100, 30),
	}

	cands := ClusterSegments(segments, config.Default())
	if len(cands) != 1 {
		t.Fatalf("got %d clusters, want 1", len(cands))
	}
	if cands[0].Zone != taxonomy.ZoneTravelLane {
		t.Errorf("compact envelope classified %q, want travel_lane", cands[0].Zone)
	}
}

func TestClusterSegmentsDistanceSplits(t *testing.T) {
	segments := []imaging.Segment{
		seg(0, 100, 300, 100),
		seg(0, 600, 300, 600), // parallel but 500px away
	}

	cands := ClusterSegments(segments, config.Default())
	if len(cands) != 2 {
		t.Errorf("distant parallels formed %d clusters, want 2", len(cands))
	}
}

func TestClusterSegmentsAngleSplits(t *testing.T) {
	segments := []imaging.Segment{
		seg(0, 100, 300, 100), // horizontal
		seg(150, 0, 150, 200), // vertical, crossing the first
	}

	cands := ClusterSegments(segments, config.Default())
	if len(cands) != 2 {
		t.Errorf("perpendicular segments formed %d clusters, want 2", len(cands))
	}
}

func TestClusterSegmentsMinLengthFilter(t *testing.T) {
	segments := []imaging.Segment{
		seg(0, 0, 10, 0), // below default MinLineLength 30
		seg(0, 5, 12, 5),
	}

	cands := ClusterSegments(segments, config.Default())
	if len(cands) != 0 {
		t.Errorf("short segments formed %d clusters, want 0", len(cands))
	}
}

func TestClusterSegmentsOrderIndependent(t *testing.T) {
	base := []imaging.Segment{
		seg(0, 100, 300, 100),
		seg(0, 120, 300, 120),
		seg(0, 140, 300, 140),
		seg(500, 100, 800, 100),
		seg(500, 130, 800, 130),
		seg(100, 500, 100, 800),
	}

	want := ClusterSegments(base, config.Default())

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]imaging.Segment, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := ClusterSegments(shuffled, config.Default())
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("trial %d: partition depends on input order (-want +got):\n%s", trial, diff)
		}
	}

	// Reversed order as an explicit worst case.
	reversed := make([]imaging.Segment, len(base))
	for i, s := range base {
		reversed[len(base)-1-i] = s
	}
	if diff := cmp.Diff(want, ClusterSegments(reversed, config.Default())); diff != "" {
		t.Errorf("reversed input changed the partition (-want +got):\n%s", diff)
	}
}

func TestClusterSegmentsEmptyInput(t *testing.T) {
	if cands := ClusterSegments(nil, config.Default()); len(cands) != 0 {
		t.Errorf("nil input yielded %d clusters, want 0", len(cands))
	}
}
