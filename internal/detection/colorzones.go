package detection

import (
	"image"
	"sort"

	"github.com/warelayout/zonemap/internal/config"
	"github.com/warelayout/zonemap/internal/imaging"
)

// minMarkingValue is the HSV value floor for a pixel to count as painted
// floor marking. Near-black pixels are structure lines, not paint.
const minMarkingValue = 0.15

// DetectColorZones partitions an image into candidate regions by hue band.
//
// For each configured band the image is thresholded on hue and saturation,
// connected components are extracted, and components of the same band within
// MergeGap pixels of each other are merged into one region. This models real
// floor markings drawn as several abutting painted rectangles: a 2px gap or
// an L-shaped pair of rectangles is one logical zone, not two.
//
// Components below MinRegionArea (counting painted pixels, not bounding-box
// area) are dropped as noise. Confidence is hue purity: the fraction of a
// region's pixels falling in the band's tight core rather than merely its
// loose threshold range.
//
// An image with zero colored pixels yields an empty result, not an error.
func DetectColorZones(img image.Image, cfg config.PreprocessingConfig) ([]Candidate, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, nil
	}

	plane := imaging.ConvertHSV(img)

	var candidates []Candidate
	for _, band := range cfg.HueBands {
		mask := newBitmask(width, height)
		painted := false
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				px := plane.At(x, y)
				if px.V >= minMarkingValue && band.Contains(px.H, px.S) {
					mask.set(x, y)
					painted = true
				}
			}
		}
		if !painted {
			continue
		}

		// Merge across small gaps by extracting components on a dilated
		// mask, then measuring each component on the original pixels.
		grown := mask.dilate((cfg.MergeGap + 1) / 2)
		for _, comp := range grown.components(1) {
			var members []pixel
			tight := 0
			for _, p := range comp {
				if !mask.at(p.x, p.y) {
					continue
				}
				members = append(members, p)
				if band.ContainsTight(plane.At(p.x, p.y).H) {
					tight++
				}
			}

			area := len(members)
			if area < cfg.MinRegionArea {
				continue
			}

			b := boundsOf(members)
			regionMask := make([]bool, b.Width()*b.Height())
			for _, p := range members {
				regionMask[(p.y-b.Y1)*b.Width()+(p.x-b.X1)] = true
			}

			candidates = append(candidates, Candidate{
				Bounds:     b,
				Mask:       regionMask,
				Area:       area,
				Zone:       band.Zone,
				Confidence: float64(tight) / float64(area),
				Source:     SourceColor,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Area > candidates[j].Area
	})

	return candidates, nil
}
