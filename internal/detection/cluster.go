package detection

import (
	"math"
	"sort"

	"github.com/warelayout/zonemap/internal/config"
	"github.com/warelayout/zonemap/internal/imaging"
	"github.com/warelayout/zonemap/internal/taxonomy"
)

// aisleAspect is the envelope aspect ratio at which an elongated cluster is
// classified as an aisle rather than a general travel lane.
const aisleAspect = 6.0

// ClusterSegments groups raw line segments into travel-path candidates.
//
// Segments shorter than MinLineLength are discarded. Two surviving segments
// belong to the same cluster when they are near-parallel (orientation
// difference below AngleToleranceDeg, folded mod 180) and both their
// perpendicular offset and closest endpoint gap are within
// LineClusterDistance. Clustering is the connected-component closure of
// this pairwise relation, computed with union-find, so the resulting
// partition does not depend on segment input order.
//
// Each cluster's bounding envelope becomes a candidate: ZoneAislePath when
// long and narrow (aspect >= 6), ZoneTravelLane otherwise. Confidence is
// the fraction of the envelope perimeter covered by segment length, capped
// at 1.
func ClusterSegments(segments []imaging.Segment, cfg config.PreprocessingConfig) []Candidate {
	var kept []imaging.Segment
	for _, s := range segments {
		if s.Length >= float64(cfg.MinLineLength) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	// Union-find over all compatible pairs. Unioning every compatible pair
	// (not just first matches) is what makes the partition order-independent.
	parent := make([]int, len(kept))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for i := 0; i < len(kept); i++ {
		for j := i + 1; j < len(kept); j++ {
			if compatible(kept[i], kept[j], cfg.LineClusterDistance, cfg.AngleToleranceDeg) {
				union(i, j)
			}
		}
	}

	clusters := make(map[int][]imaging.Segment)
	for i, s := range kept {
		root := find(i)
		clusters[root] = append(clusters[root], s)
	}

	var candidates []Candidate
	for _, members := range clusters {
		candidates = append(candidates, clusterCandidate(members))
	}

	// Deterministic output order regardless of map iteration.
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i].Bounds, candidates[j].Bounds
		if a.Y1 != b.Y1 {
			return a.Y1 < b.Y1
		}
		if a.X1 != b.X1 {
			return a.X1 < b.X1
		}
		return candidates[i].Area > candidates[j].Area
	})

	return candidates
}

// compatible reports whether two segments may share a cluster.
func compatible(a, b imaging.Segment, maxDist, angleTol float64) bool {
	if angleDifference(a.AngleDegrees, b.AngleDegrees) >= angleTol {
		return false
	}
	if perpendicularOffset(a, b) > maxDist || perpendicularOffset(b, a) > maxDist {
		return false
	}
	return endpointGap(a, b) <= maxDist
}

// angleDifference folds orientations mod 180 and returns their absolute
// difference in [0, 90]. A segment has no direction, only an orientation.
func angleDifference(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 180)
	if d > 90 {
		d = 180 - d
	}
	return d
}

// perpendicularOffset is the distance from b's midpoint to the infinite
// line through a.
func perpendicularOffset(a, b imaging.Segment) float64 {
	dx := float64(a.End.X - a.Start.X)
	dy := float64(a.End.Y - a.Start.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.MaxFloat64
	}
	mx, my := b.Midpoint()
	return math.Abs((mx-float64(a.Start.X))*(-dy/length) + (my-float64(a.Start.Y))*(dx/length))
}

// endpointGap is the smallest distance between any endpoint of a and any
// endpoint of b.
func endpointGap(a, b imaging.Segment) float64 {
	gap := math.MaxFloat64
	for _, pa := range []imaging.Point{a.Start, a.End} {
		for _, pb := range []imaging.Point{b.Start, b.End} {
			d := math.Hypot(float64(pa.X-pb.X), float64(pa.Y-pb.Y))
			if d < gap {
				gap = d
			}
		}
	}
	return gap
}

// clusterCandidate builds the envelope candidate for one cluster.
func clusterCandidate(members []imaging.Segment) Candidate {
	b := Bounds{
		X1: members[0].Start.X, Y1: members[0].Start.Y,
		X2: members[0].Start.X + 1, Y2: members[0].Start.Y + 1,
	}
	sumLen := 0.0
	for _, s := range members {
		sumLen += s.Length
		for _, p := range []imaging.Point{s.Start, s.End} {
			if p.X < b.X1 {
				b.X1 = p.X
			}
			if p.X+1 > b.X2 {
				b.X2 = p.X + 1
			}
			if p.Y < b.Y1 {
				b.Y1 = p.Y
			}
			if p.Y+1 > b.Y2 {
				b.Y2 = p.Y + 1
			}
		}
	}

	zone := taxonomy.ZoneTravelLane
	if aspectRatio(b) >= aisleAspect {
		zone = taxonomy.ZoneAislePath
	}

	perimeter := float64(2 * (b.Width() + b.Height()))
	conf := clamp01(sumLen / perimeter)

	return Candidate{
		Bounds:     b,
		Mask:       nil, // envelope covers the full rectangle
		Area:       b.RectArea(),
		Zone:       zone,
		Confidence: conf,
		Source:     SourceLineCluster,
	}
}
