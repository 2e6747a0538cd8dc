// Package detection implements the three candidate-region detectors of the
// zone classification pipeline: color-boundary, structural density, and
// line clustering.
//
// Each detector is a pure function of (image, config) producing a list of
// Candidate regions with a provisional zone type and a confidence score in
// [0,1]. Detectors share no state and never mutate their inputs, so the
// pipeline runs them in parallel. Conflicts between their outputs are not
// resolved here; that is the adjudicator's job (internal/pipeline).
//
// # Signals
//
//   - Color: painted floor markings partitioned by hue band. The most
//     deliberate signal in a warehouse; regions drawn as several abutting
//     rectangles are merged across small gaps.
//   - Structural: edge density over a sliding window. Finds zones
//     delineated by physical structure (rack uprights, shelving) rather
//     than paint, plus open floor between them.
//   - Line clusters: near-parallel line segments grouped into elongated
//     travel-path envelopes.
//
// # Degenerate Inputs
//
// A blank, grayscale, or unmarked image is not an error: every detector
// returns an empty candidate list for an image that carries none of its
// signal.
package detection
