package pipeline

import (
	"sort"

	"github.com/warelayout/zonemap/internal/config"
	"github.com/warelayout/zonemap/internal/detection"
	"github.com/warelayout/zonemap/internal/taxonomy"
)

// Confidence multipliers for the area sanity check. An area outside the
// zone type's typical band is a warning sign; an order of magnitude outside
// is a strong one. Neither reclassifies: a warehouse can legitimately have
// an oversized staging area.
const (
	areaOutsideBandFactor = 0.85
	areaWildlyOutFactor   = 0.6
)

// Adjudicate reconciles overlapping candidates from all detectors into a
// non-overlapping zone list.
//
// Candidates are ranked by confidence; ties prefer color over structural
// over line-cluster, since painted markings are the most deliberate signal
// in a warehouse. Each candidate claims its still-unclaimed pixels in rank
// order, so losers are clipped to whatever the winners left. A winner can
// bisect a loser; each surviving connected fragment then becomes its own
// zone, so no published zone spans a pixel another zone owns. Fragments
// below MinRegionArea are dropped entirely.
//
// Each surviving region's area is cross-checked against its type's typical
// band; violations downgrade confidence but never drop or reclassify the
// region. The returned zones are ordered by final (post-downgrade)
// confidence. An empty candidate set yields an empty list, not an error.
func Adjudicate(width, height int, cands []detection.Candidate, cfg config.PreprocessingConfig) []Zone {
	if len(cands) == 0 {
		return nil
	}

	ranked := make([]detection.Candidate, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Source.Priority() != b.Source.Priority() {
			return a.Source.Priority() < b.Source.Priority()
		}
		return a.Area > b.Area
	})

	claimed := make([]bool, width*height)
	var zones []Zone

	for i := range ranked {
		cand := &ranked[i]

		bw := cand.Bounds.Width()
		surv := make([]bool, bw*cand.Bounds.Height())
		survived := 0
		for y := cand.Bounds.Y1; y < cand.Bounds.Y2; y++ {
			if y < 0 || y >= height {
				continue
			}
			for x := cand.Bounds.X1; x < cand.Bounds.X2; x++ {
				if x < 0 || x >= width || claimed[y*width+x] || !cand.Contains(x, y) {
					continue
				}
				surv[(y-cand.Bounds.Y1)*bw+(x-cand.Bounds.X1)] = true
				survived++
			}
		}

		if survived == 0 {
			continue
		}

		if survived == cand.Area {
			// Uncontested: the candidate's own geometry is final.
			for y := cand.Bounds.Y1; y < cand.Bounds.Y2; y++ {
				for x := cand.Bounds.X1; x < cand.Bounds.X2; x++ {
					if cand.Contains(x, y) {
						claimed[y*width+x] = true
					}
				}
			}
			zones = append(zones, Zone{
				Bounds:     cand.Bounds,
				Mask:       cand.Mask,
				Type:       cand.Zone,
				Confidence: areaSanity(cand.Zone, cand.Area, cand.Confidence),
				AreaPixels: cand.Area,
				Source:     cand.Source,
			})
			continue
		}

		// Clipped: a winner may have cut this candidate into pieces, so
		// each surviving connected fragment is published separately with
		// its own geometry. Fragments under the noise floor stay
		// unclaimed for lower-ranked candidates.
		for _, frag := range detection.SplitFragments(cand.Bounds, surv) {
			if frag.Area < cfg.MinRegionArea {
				continue
			}
			fw := frag.Bounds.Width()
			for y := frag.Bounds.Y1; y < frag.Bounds.Y2; y++ {
				for x := frag.Bounds.X1; x < frag.Bounds.X2; x++ {
					if frag.Mask[(y-frag.Bounds.Y1)*fw+(x-frag.Bounds.X1)] {
						claimed[y*width+x] = true
					}
				}
			}
			zones = append(zones, Zone{
				Bounds:     frag.Bounds,
				Mask:       frag.Mask,
				Type:       cand.Zone,
				Confidence: areaSanity(cand.Zone, frag.Area, cand.Confidence),
				AreaPixels: frag.Area,
				Source:     cand.Source,
			})
		}
	}

	// Area-sanity downgrades can reorder effective confidences, so the
	// published order is fixed only after every zone is final.
	sort.SliceStable(zones, func(i, j int) bool {
		a, b := zones[i], zones[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Source.Priority() != b.Source.Priority() {
			return a.Source.Priority() < b.Source.Priority()
		}
		return a.AreaPixels > b.AreaPixels
	})

	return zones
}

// areaSanity applies the typical-area cross-check to a final confidence.
func areaSanity(zone taxonomy.ZoneType, area int, confidence float64) float64 {
	props := taxonomy.Lookup(zone)
	switch {
	case area > props.TypicalMaxArea*10 || area*10 < props.TypicalMinArea:
		return confidence * areaWildlyOutFactor
	case area > props.TypicalMaxArea || area < props.TypicalMinArea:
		return confidence * areaOutsideBandFactor
	default:
		return confidence
	}
}
