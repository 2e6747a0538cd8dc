package detection

import (
	"image"
	"sort"

	"github.com/warelayout/zonemap/internal/config"
	"github.com/warelayout/zonemap/internal/imaging"
	"github.com/warelayout/zonemap/internal/taxonomy"
)

// structureEdgeThreshold is the gradient cutoff for the structural edge map.
const structureEdgeThreshold = 30

// minStructureFraction is the image-wide edge fraction below which the plan
// is considered structureless. Open floor is only meaningful relative to
// surrounding structure, so a blank plan yields no candidates at all rather
// than one giant travel lane.
const minStructureFraction = 0.001

// rackingAspect separates elongated rack rows from square bulk blocks.
const rackingAspect = 2.5

// openFloorScale damps open-floor confidence so inferred open floor never
// outranks a deliberate signal of equal quality.
const openFloorScale = 0.6

// DetectStructure identifies candidate regions by local edge density.
//
// The image's edge map is sampled with a sliding window of side
// DensityWindow (stride half the window). Windows whose edge-pixel fraction
// falls inside the configured racking band mark physical storage structure;
// windows at or below the open-floor ceiling mark clear floor. Adjacent
// cells of the same class merge into components, which become candidates
// after the MinRegionArea filter:
//
//   - dense components: ZoneRacking when elongated (aspect >= 2.5),
//     ZoneBulkStorage otherwise
//   - open components: ZoneTravelLane
//
// Confidence for dense components measures how close the mean density sits
// to the racking band's midpoint, clipped to [0,1]. Open-floor confidence
// decays linearly with residual density and is additionally scaled down,
// since absence of edges is weaker evidence than presence of structure.
func DetectStructure(img image.Image, cfg config.PreprocessingConfig) ([]Candidate, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, nil
	}

	edges := imaging.EdgeMap(img, structureEdgeThreshold)
	if imaging.EdgeFraction(edges) < minStructureFraction {
		return nil, nil
	}

	// Integral image for O(1) window sums.
	integral := make([][]int, height+1)
	integral[0] = make([]int, width+1)
	for y := 0; y < height; y++ {
		integral[y+1] = make([]int, width+1)
		rowSum := 0
		for x := 0; x < width; x++ {
			if edges[y][x] {
				rowSum++
			}
			integral[y+1][x+1] = integral[y][x+1] + rowSum
		}
	}

	win := cfg.DensityWindow
	if win > width {
		win = width
	}
	if win > height {
		win = height
	}
	step := win / 2
	if step < 1 {
		step = 1
	}

	cols := (width + step - 1) / step
	rows := (height + step - 1) / step

	density := func(cx, cy int) float64 {
		x1 := cx * step
		y1 := cy * step
		x2 := x1 + win
		y2 := y1 + win
		if x2 > width {
			x2 = width
		}
		if y2 > height {
			y2 = height
		}
		sum := integral[y2][x2] - integral[y1][x2] - integral[y2][x1] + integral[y1][x1]
		return float64(sum) / float64((x2-x1)*(y2-y1))
	}

	band := cfg.Density
	dense := newBitmask(cols, rows)
	open := newBitmask(cols, rows)
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			d := density(cx, cy)
			switch {
			case d >= band.RackingMin && d <= band.RackingMax:
				dense.set(cx, cy)
			case d <= band.OpenFloorMax:
				open.set(cx, cy)
			}
		}
	}

	var candidates []Candidate
	mid := (band.RackingMin + band.RackingMax) / 2
	half := (band.RackingMax - band.RackingMin) / 2

	for _, comp := range dense.components(1) {
		cand, meanDensity := cellComponentCandidate(comp, step, width, height, cfg.MinRegionArea, density)
		if cand == nil {
			continue
		}

		conf := 1 - abs(meanDensity-mid)/half
		cand.Confidence = clamp01(conf)
		aspect := aspectRatio(cand.Bounds)
		if aspect >= rackingAspect {
			cand.Zone = taxonomy.ZoneRacking
		} else {
			cand.Zone = taxonomy.ZoneBulkStorage
		}
		cand.Source = SourceStructural
		candidates = append(candidates, *cand)
	}

	for _, comp := range open.components(1) {
		cand, meanDensity := cellComponentCandidate(comp, step, width, height, cfg.MinRegionArea, density)
		if cand == nil {
			continue
		}

		cand.Confidence = clamp01(1-meanDensity/band.OpenFloorMax) * openFloorScale
		cand.Zone = taxonomy.ZoneTravelLane
		cand.Source = SourceStructural
		candidates = append(candidates, *cand)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Area > candidates[j].Area
	})

	return candidates, nil
}

// cellComponentCandidate converts a component of grid cells into a
// pixel-space candidate, or nil when it falls under the area floor.
// Also returns the component's mean window density.
func cellComponentCandidate(comp []pixel, step, width, height, minArea int, density func(int, int) float64) (*Candidate, float64) {
	cellBounds := boundsOf(comp)
	b := Bounds{
		X1: cellBounds.X1 * step,
		Y1: cellBounds.Y1 * step,
		X2: cellBounds.X2 * step,
		Y2: cellBounds.Y2 * step,
	}
	if b.X2 > width {
		b.X2 = width
	}
	if b.Y2 > height {
		b.Y2 = height
	}

	mask := make([]bool, b.Width()*b.Height())
	area := 0
	sum := 0.0
	for _, c := range comp {
		sum += density(c.x, c.y)
		px1 := c.x * step
		py1 := c.y * step
		px2 := px1 + step
		py2 := py1 + step
		if px2 > width {
			px2 = width
		}
		if py2 > height {
			py2 = height
		}
		for y := py1; y < py2; y++ {
			for x := px1; x < px2; x++ {
				idx := (y-b.Y1)*b.Width() + (x - b.X1)
				if !mask[idx] {
					mask[idx] = true
					area++
				}
			}
		}
	}

	if area < minArea {
		return nil, 0
	}

	return &Candidate{
		Bounds: b,
		Mask:   mask,
		Area:   area,
	}, sum / float64(len(comp))
}

// aspectRatio returns long side over short side of a bounding box.
func aspectRatio(b Bounds) float64 {
	w := float64(b.Width())
	h := float64(b.Height())
	if w == 0 || h == 0 {
		return 1
	}
	if w > h {
		return w / h
	}
	return h / w
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
