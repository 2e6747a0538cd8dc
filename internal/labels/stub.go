//go:build !cgo || !linux

package labels

import "image"

// Available reports that OCR support is not compiled into this build.
func Available() bool { return false }

// ReadRegionText always returns ErrUnavailable in non-OCR builds.
func ReadRegionText(_ image.Image, _, _, _, _ int) (string, error) {
	return "", ErrUnavailable
}
