// Package pipeline assembles the zone detection pipeline: the Phase 0
// fast-track gate, the parallel detector fan-out, the region merge and
// classification adjudicator, and the final ZoneMap result.
//
// Run is the single entry point. A run is free of cross-run state: one
// image and one configuration in, one zone map out. The three detectors
// have no data dependency on each other and execute concurrently with
// read-only access to the image; the adjudicator joins their candidate
// sets into a single non-overlapping zone map.
//
// # Phase 0
//
// The fast-track gate sits in front of the whole pipeline. When enabled it
// computes a cheap dominant-hue coverage scan; if that coarse signal's
// confidence reaches the configured threshold the gate emits the coarse
// classification directly and the detectors never run. Below threshold the
// coarse result is discarded entirely so it cannot bias the full pipeline.
//
// # Failure Semantics
//
// Configuration errors surface before any pixel work. Degenerate inputs
// (blank, grayscale, unmarked plans) produce an empty or partial ZoneMap,
// not an error. A single detector failing while others succeed downgrades
// confidence and marks the map partial rather than aborting the run.
package pipeline
