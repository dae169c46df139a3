package inpaint

import (
	"math"
	"testing"
)

func TestInterpolateAtLeavesResidualWhenNoKnownNeighbor(t *testing.T) {
	h, w, c := 3, 3, 1
	view := NewArrayView3[float64](h, w, c)
	view.Set(1, 1, 0, 42)
	flags := newFlagField(h, w) // all Unknown (zero value)
	tf := newTField(h, w)
	interpolateAt(view, flags, tf, h, w, c, 1, 1, 1)
	if got := view.At(1, 1, 0); got != 42 {
		t.Fatalf("got %v, want residual 42 preserved", got)
	}
}

func TestInterpolateAtUniformNeighborhood(t *testing.T) {
	h, w, c := 5, 5, 1
	view := NewArrayView3[float64](h, w, c)
	flags := newFlagField(h, w)
	tf := newTField(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y == 2 && x == 2 {
				continue
			}
			view.Set(y, x, 0, 1.0)
			flags.Set(y, x, Known)
		}
	}
	interpolateAt(view, flags, tf, h, w, c, 2, 2, 2)
	got := view.At(2, 2, 0)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("got %v, want ~1.0", got)
	}
}
