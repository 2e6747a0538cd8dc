// Package labels reads painted floor text (e.g. "RECEIVING") out of zone
// regions using Tesseract OCR.
//
// On Linux with CGO enabled this uses the gosseract library with native
// Tesseract bindings; Tesseract and its language data must be installed on
// the host. On other platforms, or without CGO, the package compiles to a
// stub whose ReadRegionText returns ErrUnavailable, and Available reports
// false so callers can skip label annotation entirely.
package labels

import "errors"

// ErrUnavailable is returned when OCR support is not compiled in.
var ErrUnavailable = errors.New("label OCR not available in this build")
