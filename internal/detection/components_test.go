package detection

import "testing"

func TestSplitFragmentsBisectedMask(t *testing.T) {
	// A mask with its middle third cleared splits into two fragments with
	// tight, non-overlapping bounds.
	b := Bounds{X1: 10, Y1: 10, X2: 40, Y2: 20}
	mask := make([]bool, b.RectArea())
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if x < 10 || x >= 20 {
				mask[y*b.Width()+x] = true
			}
		}
	}

	frags := SplitFragments(b, mask)
	if len(frags) != 2 {
		t.Fatalf("got %d fragments, want 2", len(frags))
	}

	left, right := frags[0], frags[1]
	if left.Bounds.X1 > right.Bounds.X1 {
		left, right = right, left
	}
	if want := (Bounds{X1: 10, Y1: 10, X2: 20, Y2: 20}); left.Bounds != want {
		t.Errorf("left fragment bounds = %+v, want %+v", left.Bounds, want)
	}
	if want := (Bounds{X1: 30, Y1: 10, X2: 40, Y2: 20}); right.Bounds != want {
		t.Errorf("right fragment bounds = %+v, want %+v", right.Bounds, want)
	}
	if left.Area != 100 || right.Area != 100 {
		t.Errorf("fragment areas = %d, %d, want 100 each", left.Area, right.Area)
	}
}

func TestSplitFragmentsConnectedMaskStaysWhole(t *testing.T) {
	b := Bounds{X1: 0, Y1: 0, X2: 10, Y2: 10}
	mask := make([]bool, b.RectArea())
	for i := range mask {
		mask[i] = true
	}
	mask[5*10+5] = false // a hole does not disconnect the region

	frags := SplitFragments(b, mask)
	if len(frags) != 1 {
		t.Fatalf("got %d fragments, want 1", len(frags))
	}
	if frags[0].Area != 99 {
		t.Errorf("fragment area = %d, want 99", frags[0].Area)
	}
}

func TestSplitFragmentsNilMaskIsWholeRect(t *testing.T) {
	b := Bounds{X1: 2, Y1: 3, X2: 7, Y2: 7}
	frags := SplitFragments(b, nil)
	if len(frags) != 1 {
		t.Fatalf("got %d fragments, want 1", len(frags))
	}
	if frags[0].Bounds != b || frags[0].Area != b.RectArea() {
		t.Errorf("nil-mask fragment = %+v, want the full rectangle", frags[0])
	}
}
