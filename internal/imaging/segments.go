package imaging

import (
	"image"
	"math"
	"sort"
)

// Point is a 2D pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Segment is a raw detected line segment, the input to line clustering.
type Segment struct {
	Start        Point   `json:"start"`
	End          Point   `json:"end"`
	Length       float64 `json:"length"`
	AngleDegrees float64 `json:"angle_degrees"`
}

// Midpoint returns the segment's midpoint in float coordinates.
func (s Segment) Midpoint() (float64, float64) {
	return float64(s.Start.X+s.End.X) / 2, float64(s.Start.Y+s.End.Y) / 2
}

// maxSegments caps the number of Hough peaks converted to segments.
// Floor plans with dense hatching would otherwise flood the clusterer.
const maxSegments = 50

// DetectSegments finds straight line segments in an image using a Hough
// transform over the edge map.
//
// Parameters:
//   - img: Source image.
//   - edgeThreshold: Gradient cutoff passed to EdgeMap.
//   - minLength: Segments shorter than this many pixels are discarded.
//
// Returns segments sorted by descending length. An image with no detectable
// lines yields an empty slice, not an error.
//
// # Algorithm
//
//  1. Binary edge map (EdgeMap)
//  2. Vote in (rho, theta) Hough space at 1 degree resolution
//  3. Local-maximum peak extraction above minLength/2 votes
//  4. For each peak, collect edge pixels within 2px of the line and take
//     the extremal projections as segment endpoints
func DetectSegments(img image.Image, edgeThreshold float64, minLength int) []Segment {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	edges := EdgeMap(img, edgeThreshold)

	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	numAngles := 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	type peak struct {
		rho   int
		theta int
		votes int
	}
	peaks := make([]peak, 0)
	voteThreshold := minLength / 2
	if voteThreshold < 2 {
		voteThreshold = 2
	}

	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			if accumulator[rhoIdx][theta] < voteThreshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 && accumulator[nr][nt] > accumulator[rhoIdx][theta] {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - maxDist, theta: theta, votes: accumulator[rhoIdx][theta]})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	segments := make([]Segment, 0)
	for _, p := range peaks {
		if len(segments) >= maxSegments {
			break
		}

		angle := float64(p.theta) * math.Pi / 180.0
		cosA := math.Cos(angle)
		sinA := math.Sin(angle)
		rho := float64(p.rho)

		// Collect edge pixels lying on this line, within tolerance.
		var startX, startY, endX, endY int
		minProj := math.MaxFloat64
		maxProj := -math.MaxFloat64
		onLine := 0
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges[y][x] {
					continue
				}
				if math.Abs(float64(x)*cosA+float64(y)*sinA-rho) >= 2.0 {
					continue
				}
				onLine++
				// Project onto the line direction to find extremes.
				d := float64(x)*-sinA + float64(y)*cosA
				if d < minProj {
					minProj = d
					startX, startY = x, y
				}
				if d > maxProj {
					maxProj = d
					endX, endY = x, y
				}
			}
		}

		if onLine < minLength {
			continue
		}

		dx := float64(endX - startX)
		dy := float64(endY - startY)
		length := math.Sqrt(dx*dx + dy*dy)
		if length < float64(minLength) {
			continue
		}

		segments = append(segments, Segment{
			Start:        Point{X: startX + bounds.Min.X, Y: startY + bounds.Min.Y},
			End:          Point{X: endX + bounds.Min.X, Y: endY + bounds.Min.Y},
			Length:       math.Round(length*10) / 10,
			AngleDegrees: math.Round(math.Atan2(dy, dx)*180/math.Pi*10) / 10,
		})
	}

	sort.Slice(segments, func(i, j int) bool {
		return segments[i].Length > segments[j].Length
	})

	return segments
}
