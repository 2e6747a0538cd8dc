package detection

import (
	"github.com/warelayout/zonemap/internal/taxonomy"
)

// Source identifies which detector produced a candidate.
type Source string

const (
	SourceColor       Source = "color"
	SourceStructural  Source = "structural"
	SourceLineCluster Source = "line-cluster"
)

// Priority ranks detectors for adjudication tie-breaks: color markings are
// the most deliberate signal, structural edges next, line clusters last.
// Lower is stronger.
func (s Source) Priority() int {
	switch s {
	case SourceColor:
		return 0
	case SourceStructural:
		return 1
	default:
		return 2
	}
}

// Bounds is a rectangular bounding box: (X1,Y1) inclusive top-left,
// (X2,Y2) exclusive bottom-right.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns the horizontal extent in pixels.
func (b Bounds) Width() int { return b.X2 - b.X1 }

// Height returns the vertical extent in pixels.
func (b Bounds) Height() int { return b.Y2 - b.Y1 }

// RectArea returns the bounding-box area, which may exceed the region's
// pixel area for non-rectangular masks.
func (b Bounds) RectArea() int { return b.Width() * b.Height() }

// Candidate is a transient classification artifact: one detector's guess at
// a zone, discarded after adjudication.
type Candidate struct {
	// Bounds is the bounding box of the region.
	Bounds Bounds `json:"bounds"`

	// Mask marks member pixels, row-major over Bounds. A nil Mask means the
	// whole bounding rectangle is the region (line-cluster envelopes).
	Mask []bool `json:"-"`

	// Area is the member pixel count.
	Area int `json:"area"`

	// Zone is the detector's provisional classification.
	Zone taxonomy.ZoneType `json:"zone"`

	// Confidence is the detector's certainty, in [0,1].
	Confidence float64 `json:"confidence"`

	// Source is the detector that produced this candidate.
	Source Source `json:"source"`
}

// Contains reports whether the candidate's region covers pixel (x, y).
func (c *Candidate) Contains(x, y int) bool {
	if x < c.Bounds.X1 || x >= c.Bounds.X2 || y < c.Bounds.Y1 || y >= c.Bounds.Y2 {
		return false
	}
	if c.Mask == nil {
		return true
	}
	return c.Mask[(y-c.Bounds.Y1)*c.Bounds.Width()+(x-c.Bounds.X1)]
}
