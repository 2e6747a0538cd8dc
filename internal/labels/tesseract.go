//go:build cgo && linux

package labels

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Available reports that OCR support is compiled into this build.
func Available() bool { return true }

// ReadRegionText runs OCR over one rectangular region of an image and
// returns the recognized text with surrounding whitespace trimmed. An empty
// string with a nil error means the region contains no readable text.
func ReadRegionText(img image.Image, x1, y1, x2, y2 int) (string, error) {
	bounds := img.Bounds()
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	if x1 >= x2 || y1 >= y2 {
		return "", fmt.Errorf("empty region (%d,%d)-(%d,%d)", x1, y1, x2, y2)
	}

	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2))

	// Tesseract wants a file path.
	f, err := os.CreateTemp("", "zonemap-label-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if err := png.Encode(f, cropped); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to encode region: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("failed to set OCR image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}
