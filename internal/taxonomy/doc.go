// Package taxonomy defines the closed set of warehouse zone categories and
// the static properties attached to each one.
//
// The taxonomy is the shared vocabulary of the zone detection pipeline:
// detectors emit provisional zone types, the adjudicator stamps final ones,
// and downstream tooling (routing, capacity planning) queries the property
// table to decide what a zone means operationally.
//
// # Completeness
//
// Every ZoneType has exactly one ZoneProperties entry. The table is a fixed
// package-level map, never extended at runtime, so the completeness invariant
// holds statically and is additionally verified by test.
//
// # Parsing
//
// Parse accepts free text from config files, OCR output, and CLI arguments.
// It is case-insensitive, treats "-" and "_" as equivalent, and resolves any
// unrecognized input to ZoneUnknown rather than failing.
package taxonomy
