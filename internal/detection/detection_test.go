package detection

import (
	"image"
	"image/color"
)

// Floor-marking paint colors used across detector tests.
var (
	paintOrange = color.RGBA{255, 140, 0, 255}  // hue ~33
	paintYellow = color.RGBA{255, 255, 0, 255}  // hue 60
	paintBlue   = color.RGBA{0, 0, 255, 255}    // hue 240
)

// createTestImage creates a solid-filled RGBA image.
func createTestImage(width, height int, fill color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	return img
}

// fillRect paints the rectangle [x1,x2) x [y1,y2).
func fillRect(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.Set(x, y, c)
		}
	}
}
