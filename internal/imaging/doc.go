// Package imaging provides the raster primitives consumed by the zone
// detection pipeline: floor-plan loading and caching, hue-saturation-value
// conversion, binary edge maps, and line-segment extraction.
//
// These are the low-level pixel operations the detectors treat as given.
// Everything here is a pure function of its inputs except FloorPlanCache,
// which is safe for concurrent use.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner;
// X increases rightward and Y increases downward. Primitives operating on a
// whole image normalize away any non-zero bounds origin, so detector code
// can index from (0,0).
package imaging
