package inpaint

import "testing"

func TestTGradientSignConvention(t *testing.T) {
	// T increases with x only: T[y,x] = x. dT/dx should be positive,
	// dT/dy should be 0, and the returned vector is (-dT/dy, dT/dx).
	h, w := 5, 5
	tf := newTField(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tf.Set(y, x, float64(x))
		}
	}
	gy, gx := tGradient(tf, h, w, 2, 2)
	if gx <= 0 {
		t.Fatalf("gx = %v, want > 0", gx)
	}
	if gy != 0 {
		t.Fatalf("gy = %v, want 0", gy)
	}
}

func TestTGradientOneSidedAtSentinel(t *testing.T) {
	h, w := 1, 3
	tf := newTField(h, w)
	inf := tInf(h, w)
	tf.Set(0, 0, 0)
	tf.Set(0, 1, 1)
	tf.Set(0, 2, inf) // still Unknown
	_, gx := tGradient(tf, h, w, 0, 1)
	if gx != 1 {
		t.Fatalf("gx = %v, want 1 (one-sided backward difference)", gx)
	}
}

func TestImageGradientDefaultsZeroWhenAllUnknown(t *testing.T) {
	h, w, c := 3, 3, 1
	view := NewArrayView3[float64](h, w, c)
	flags := newFlagField(h, w)
	// every neighbor of (1,1) is Unknown (zero value), so the gradient
	// must default to zero regardless of the pixel values.
	view.Set(0, 1, 0, 100)
	gy, gx := imageGradientAt(view, flags, h, w, 1, 1, 0)
	if gy != 0 || gx != 0 {
		t.Fatalf("gradient = (%v,%v), want (0,0)", gy, gx)
	}
}

func TestImageGradientCentralDifference(t *testing.T) {
	h, w, c := 1, 3, 1
	view := NewArrayView3[float64](h, w, c)
	flags := newFlagField(h, w)
	view.Set(0, 0, 0, 10)
	view.Set(0, 1, 0, 20)
	view.Set(0, 2, 0, 30)
	flags.Set(0, 0, Known)
	flags.Set(0, 1, Known)
	flags.Set(0, 2, Known)
	_, gx := imageGradientAt(view, flags, h, w, 0, 1, 0)
	if gx != 10 {
		t.Fatalf("gx = %v, want 10", gx)
	}
}
