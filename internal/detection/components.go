package detection

// bitmask is a row-major boolean raster used for component extraction.
type bitmask struct {
	w, h int
	bits []bool
}

func newBitmask(w, h int) *bitmask {
	return &bitmask{w: w, h: h, bits: make([]bool, w*h)}
}

func (m *bitmask) at(x, y int) bool { return m.bits[y*m.w+x] }

func (m *bitmask) set(x, y int) { m.bits[y*m.w+x] = true }

// dilate grows the mask by the Chebyshev radius r, bridging gaps of up to
// 2r pixels between nearby components.
func (m *bitmask) dilate(r int) *bitmask {
	out := m
	for i := 0; i < r; i++ {
		grown := newBitmask(out.w, out.h)
		for y := 0; y < out.h; y++ {
			for x := 0; x < out.w; x++ {
				if !out.at(x, y) {
					continue
				}
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if nx >= 0 && nx < out.w && ny >= 0 && ny < out.h {
							grown.set(nx, ny)
						}
					}
				}
			}
		}
		out = grown
	}
	return out
}

// pixel is an (x, y) index pair within a mask.
type pixel struct{ x, y int }

// components extracts 8-connected components via iterative flood fill.
// Components smaller than minPixels are discarded as noise.
func (m *bitmask) components(minPixels int) [][]pixel {
	visited := make([]bool, m.w*m.h)
	var comps [][]pixel

	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if !m.at(x, y) || visited[y*m.w+x] {
				continue
			}

			// Stack-based fill; recursion would overflow on hall-sized regions.
			var comp []pixel
			stack := []pixel{{x, y}}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if p.x < 0 || p.x >= m.w || p.y < 0 || p.y >= m.h {
					continue
				}
				idx := p.y*m.w + p.x
				if visited[idx] || !m.bits[idx] {
					continue
				}
				visited[idx] = true
				comp = append(comp, p)

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						stack = append(stack, pixel{p.x + dx, p.y + dy})
					}
				}
			}

			if len(comp) >= minPixels {
				comps = append(comps, comp)
			}
		}
	}

	return comps
}

// Fragment is one connected piece of a region: tight bounds plus a
// row-major member mask and pixel area.
type Fragment struct {
	Bounds Bounds
	Mask   []bool
	Area   int
}

// SplitFragments extracts the 8-connected fragments of a mask laid out
// row-major over b. A nil mask means the whole rectangle and yields a
// single full-rect fragment.
func SplitFragments(b Bounds, mask []bool) []Fragment {
	if mask == nil {
		full := make([]bool, b.RectArea())
		for i := range full {
			full[i] = true
		}
		return []Fragment{{Bounds: b, Mask: full, Area: b.RectArea()}}
	}

	m := &bitmask{w: b.Width(), h: b.Height(), bits: mask}
	var frags []Fragment
	for _, comp := range m.components(1) {
		local := boundsOf(comp)
		fb := Bounds{
			X1: local.X1 + b.X1,
			Y1: local.Y1 + b.Y1,
			X2: local.X2 + b.X1,
			Y2: local.Y2 + b.Y1,
		}
		fm := make([]bool, fb.Width()*fb.Height())
		for _, p := range comp {
			fm[(p.y-local.Y1)*fb.Width()+(p.x-local.X1)] = true
		}
		frags = append(frags, Fragment{Bounds: fb, Mask: fm, Area: len(comp)})
	}
	return frags
}

// boundsOf returns the bounding box of a set of pixels.
func boundsOf(comp []pixel) Bounds {
	b := Bounds{X1: comp[0].x, Y1: comp[0].y, X2: comp[0].x + 1, Y2: comp[0].y + 1}
	for _, p := range comp[1:] {
		if p.x < b.X1 {
			b.X1 = p.x
		}
		if p.x+1 > b.X2 {
			b.X2 = p.x + 1
		}
		if p.y < b.Y1 {
			b.Y1 = p.y
		}
		if p.y+1 > b.Y2 {
			b.Y2 = p.y + 1
		}
	}
	return b
}
