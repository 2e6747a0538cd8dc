package pipeline

import (
	"errors"
	"fmt"
	"image"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/warelayout/zonemap/internal/config"
	"github.com/warelayout/zonemap/internal/detection"
	"github.com/warelayout/zonemap/internal/imaging"
	"github.com/warelayout/zonemap/internal/labels"
	"github.com/warelayout/zonemap/internal/taxonomy"
)

// ErrBadInput classifies input-image failures: nil or empty images, and
// runs where every available detector failed on the pixels it was given.
var ErrBadInput = errors.New("bad input image")

// segmentEdgeThreshold is the gradient cutoff used when extracting raw line
// segments for the clusterer.
const segmentEdgeThreshold = 30

// partialSignalFactor downgrades every zone's confidence when a
// configured-on detector failed and the map was built from the remaining
// signals only.
const partialSignalFactor = 0.75

// labelBoost is added to a zone's confidence when an OCR-read floor label
// parses to the same zone type the adjudicator assigned.
const labelBoost = 0.1

// Detector entry points, indirected so package tests can substitute a
// failing detector and exercise the partial-signal path.
var (
	detectColorZones = detection.DetectColorZones
	detectStructure  = detection.DetectStructure
)

// Run executes the zone detection pipeline on one floor-plan image.
//
// The configuration is validated first; construction-time errors surface
// here wrapped in config.ErrInvalidConfig before any pixel work happens.
// With the Phase 0 gate enabled, a sufficiently confident coarse scan
// short-circuits the run and the detectors never execute; otherwise the
// color, structural, and line-cluster detectors run concurrently over the
// read-only image and the adjudicator merges their candidates.
//
// Degenerate inputs (blank, grayscale, or unmarked plans) yield an empty
// ZoneMap and a nil error. A nil or zero-sized image yields ErrBadInput.
// If one detector fails while another succeeds the run proceeds on the
// remaining signal with downgraded confidence and ZoneMap.Partial set; only
// the loss of every signal is fatal.
func Run(img image.Image, cfg config.PreprocessingConfig) (*ZoneMap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrBadInput)
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: empty %dx%d image", ErrBadInput, width, height)
	}

	if cfg.Phase0.Enabled {
		if gate := EvaluateGate(img, cfg); gate.State == GateShortCircuit {
			zone := Zone{
				Bounds:     gate.Bounds,
				Type:       gate.Zone,
				Confidence: gate.Confidence,
				AreaPixels: gate.Area,
				Source:     detection.SourceColor,
			}
			return buildZoneMap([]Zone{zone}, false, true), nil
		}
		// Fall through: the coarse result is discarded entirely.
	}

	var (
		colorCands   []detection.Candidate
		structCands  []detection.Candidate
		clusterCands []detection.Candidate
		colorErr     error
		structErr    error
	)

	g := new(errgroup.Group)
	if cfg.UseColorDetection {
		g.Go(func() error {
			colorCands, colorErr = detectColorZones(img, cfg)
			return nil
		})
	}
	if cfg.UseCanny {
		g.Go(func() error {
			structCands, structErr = detectStructure(img, cfg)
			return nil
		})
	}
	g.Go(func() error {
		segments := imaging.DetectSegments(img, segmentEdgeThreshold, cfg.MinLineLength)
		clusterCands = detection.ClusterSegments(segments, cfg)
		return nil
	})
	// Detector errors are captured per-detector; the group itself never
	// fails, so one bad signal cannot cancel the others.
	_ = g.Wait()

	partial := (cfg.UseColorDetection && colorErr != nil) || (cfg.UseCanny && structErr != nil)
	if cfg.UseColorDetection && cfg.UseCanny && colorErr != nil && structErr != nil {
		return nil, fmt.Errorf("%w: color detector: %v; structural detector: %v", ErrBadInput, colorErr, structErr)
	}

	all := make([]detection.Candidate, 0, len(colorCands)+len(structCands)+len(clusterCands))
	all = append(all, colorCands...)
	all = append(all, structCands...)
	all = append(all, clusterCands...)

	zones := Adjudicate(width, height, all, cfg)

	if partial {
		for i := range zones {
			zones[i].Confidence *= partialSignalFactor
		}
	}

	if cfg.UseLabelOCR && labels.Available() {
		annotateLabels(img, zones)
	}

	return buildZoneMap(zones, partial, false), nil
}

// annotateLabels reads painted floor text inside each zone and reconciles
// it with the adjudicated classification. A label that parses to the same
// type boosts confidence; any other recognized text is recorded on the zone
// but never reclassifies it. OCR failures are logged and ignored.
func annotateLabels(img image.Image, zones []Zone) {
	for i := range zones {
		z := &zones[i]
		text, err := labels.ReadRegionText(img, z.Bounds.X1, z.Bounds.Y1, z.Bounds.X2, z.Bounds.Y2)
		if err != nil {
			log.Printf("label OCR failed for zone %d: %v", i, err)
			continue
		}
		if text == "" {
			continue
		}
		z.Label = text
		if taxonomy.Parse(text) == z.Type {
			z.Confidence = min1(z.Confidence + labelBoost)
		}
	}
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
