package pipeline

import (
	"image"

	"github.com/warelayout/zonemap/internal/config"
	"github.com/warelayout/zonemap/internal/detection"
	"github.com/warelayout/zonemap/internal/imaging"
	"github.com/warelayout/zonemap/internal/taxonomy"
)

// GateState is the fast-track gate's decision for one run.
type GateState int

const (
	// GateDisabled passes straight to the full pipeline.
	GateDisabled GateState = iota

	// GateEvaluating is the transient state while the coarse signal is
	// being computed; never returned.
	GateEvaluating

	// GateShortCircuit emits the coarse classification as final.
	GateShortCircuit

	// GateFallThrough proceeds into the full pipeline; the coarse result
	// is discarded so it cannot bias the later stages.
	GateFallThrough
)

// gateStride is the pixel sampling stride of the coarse scan. The gate
// exists for cost control: it must touch a small fraction of the image.
const gateStride = 4

// minPaintedFraction is the minimum painted share of the whole plan for the
// coarse signal to mean anything. Below it the gate always falls through.
const minPaintedFraction = 0.01

// GateResult is the outcome of a gate evaluation.
type GateResult struct {
	State      GateState
	Zone       taxonomy.ZoneType
	Bounds     detection.Bounds
	Area       int
	Confidence float64
}

// EvaluateGate computes the Phase 0 coarse signal: a strided dominant-hue
// coverage scan over the configured bands.
//
// The signal's confidence is coverage times purity for the best band, where
// coverage is the band's share of painted (saturated) samples and purity is
// the fraction of its samples inside the tight hue core. When confidence
// reaches FastTrackThreshold the gate short-circuits with a single zone
// covering the band's sampled extent.
//
// Callers must check Phase0Config.Enabled first; EvaluateGate itself only
// distinguishes short-circuit from fall-through.
func EvaluateGate(img image.Image, cfg config.PreprocessingConfig) GateResult {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	type bandTally struct {
		loose  int
		tight  int
		bounds detection.Bounds
	}
	tallies := make([]bandTally, len(cfg.HueBands))

	samples := 0
	painted := 0
	for y := 0; y < height; y += gateStride {
		for x := 0; x < width; x += gateStride {
			samples++
			px := imaging.SampleHSV(img, x+bounds.Min.X, y+bounds.Min.Y)
			if px.V < 0.15 || px.S < 0.2 {
				continue
			}
			painted++
			for i, band := range cfg.HueBands {
				if !band.Contains(px.H, px.S) {
					continue
				}
				t := &tallies[i]
				if t.loose == 0 {
					t.bounds = detection.Bounds{X1: x, Y1: y, X2: x + 1, Y2: y + 1}
				} else {
					if x < t.bounds.X1 {
						t.bounds.X1 = x
					}
					if x+1 > t.bounds.X2 {
						t.bounds.X2 = x + 1
					}
					if y < t.bounds.Y1 {
						t.bounds.Y1 = y
					}
					if y+1 > t.bounds.Y2 {
						t.bounds.Y2 = y + 1
					}
				}
				t.loose++
				if band.ContainsTight(px.H) {
					t.tight++
				}
			}
		}
	}

	if samples == 0 || float64(painted)/float64(samples) < minPaintedFraction {
		return GateResult{State: GateFallThrough}
	}

	best := -1
	bestConf := 0.0
	for i := range cfg.HueBands {
		t := tallies[i]
		if t.loose == 0 {
			continue
		}
		coverage := float64(t.loose) / float64(painted)
		purity := float64(t.tight) / float64(t.loose)
		if conf := coverage * purity; conf > bestConf {
			best = i
			bestConf = conf
		}
	}

	if best < 0 || bestConf < cfg.Phase0.FastTrackThreshold {
		return GateResult{State: GateFallThrough, Confidence: bestConf}
	}

	return GateResult{
		State:      GateShortCircuit,
		Zone:       cfg.HueBands[best].Zone,
		Bounds:     tallies[best].bounds,
		Area:       tallies[best].loose * gateStride * gateStride,
		Confidence: bestConf,
	}
}
