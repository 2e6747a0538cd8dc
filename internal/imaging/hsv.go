package imaging

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV is a pixel in hue-saturation-value space.
//
//   - H: hue in degrees, [0, 360)
//   - S: saturation, [0, 1] (0 = gray, 1 = vivid)
//   - V: value/brightness, [0, 1] (0 = black, 1 = full)
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// HSVPlane is a whole image converted to HSV, indexed from (0,0) regardless
// of the source image's bounds origin.
type HSVPlane struct {
	Width  int
	Height int
	pix    []HSV
}

// ConvertHSV converts an image to hue-saturation-value representation.
//
// Conversion uses go-colorful's HSV model on 8-bit RGB. Alpha is ignored;
// floor plans are opaque rasters.
func ConvertHSV(img image.Image) *HSVPlane {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	plane := &HSVPlane{
		Width:  width,
		Height: height,
		pix:    make([]HSV, width*height),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			c := colorful.Color{
				R: float64(r>>8) / 255.0,
				G: float64(g>>8) / 255.0,
				B: float64(b>>8) / 255.0,
			}
			h, s, v := c.Hsv()
			plane.pix[y*width+x] = HSV{H: h, S: s, V: v}
		}
	}

	return plane
}

// At returns the HSV pixel at (x, y). Coordinates must be in range.
func (p *HSVPlane) At(x, y int) HSV {
	return p.pix[y*p.Width+x]
}

// SampleHSV converts a single pixel to HSV without building a full plane.
// Used by the Phase 0 coarse scan, which samples on a stride.
func SampleHSV(img image.Image, x, y int) HSV {
	r, g, b, _ := img.At(x, y).RGBA()
	c := colorful.Color{
		R: float64(r>>8) / 255.0,
		G: float64(g>>8) / 255.0,
		B: float64(b>>8) / 255.0,
	}
	h, s, v := c.Hsv()
	return HSV{H: h, S: s, V: v}
}
