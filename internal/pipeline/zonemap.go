package pipeline

import (
	"github.com/warelayout/zonemap/internal/detection"
	"github.com/warelayout/zonemap/internal/taxonomy"
)

// Zone is one classified region of the final map.
type Zone struct {
	// Bounds is the region's bounding box after clipping.
	Bounds detection.Bounds `json:"bounds"`

	// Mask marks the zone's member pixels, row-major over Bounds. A nil
	// Mask means the whole bounding rectangle. Non-rectangular remnants of
	// adjudication clipping keep their exact geometry here.
	Mask []bool `json:"-"`

	// Type is the adjudicated zone classification.
	Type taxonomy.ZoneType `json:"type"`

	// Confidence is the final certainty in [0,1], after adjudication
	// adjustments (area sanity, partial-signal downgrade, label boost).
	Confidence float64 `json:"confidence"`

	// AreaPixels is the region's pixel area after clipping. For
	// non-rectangular regions this is smaller than the bounding-box area.
	AreaPixels int `json:"area_pixels"`

	// Source is the detector whose candidate won this region.
	Source detection.Source `json:"source"`

	// Label is the OCR-recognized floor text inside the region, when label
	// reading is enabled and text was found.
	Label string `json:"label,omitempty"`
}

// ZoneMap is the result of one pipeline run: an ordered, non-overlapping
// region set with summary statistics.
//
// Zones are ordered by descending confidence. An empty Zones slice is a
// valid outcome for a plan with no detectable boundaries.
type ZoneMap struct {
	Zones []Zone `json:"zones"`

	// Counts is the number of zones per type. Types with no zones are
	// absent.
	Counts map[taxonomy.ZoneType]int `json:"counts"`

	// TotalZoneArea is the summed pixel area of all zones.
	TotalZoneArea int `json:"total_zone_area"`

	// Partial marks a map produced while a configured-on detector had
	// failed; confidences are already downgraded.
	Partial bool `json:"partial"`

	// FastTracked marks a map emitted by the Phase 0 gate without running
	// the full pipeline.
	FastTracked bool `json:"fast_tracked"`
}

// Contains reports whether the zone's region covers pixel (x, y). Zones in
// one map never share a pixel: at most one Contains is true per coordinate.
func (z *Zone) Contains(x, y int) bool {
	if x < z.Bounds.X1 || x >= z.Bounds.X2 || y < z.Bounds.Y1 || y >= z.Bounds.Y2 {
		return false
	}
	if z.Mask == nil {
		return true
	}
	return z.Mask[(y-z.Bounds.Y1)*z.Bounds.Width()+(x-z.Bounds.X1)]
}

// buildZoneMap assembles the summary fields from a finished zone list.
func buildZoneMap(zones []Zone, partial, fastTracked bool) *ZoneMap {
	m := &ZoneMap{
		Zones:       zones,
		Counts:      make(map[taxonomy.ZoneType]int),
		Partial:     partial,
		FastTracked: fastTracked,
	}
	for _, z := range zones {
		m.Counts[z.Type]++
		m.TotalZoneArea += z.AreaPixels
	}
	return m
}
