package inpaint

import "testing"

func TestArrayView3GetSet(t *testing.T) {
	v := NewArrayView3[float32](3, 4, 2)
	v.Set(1, 2, 1, 5.5)
	if got := v.At(1, 2, 1); got != 5.5 {
		t.Fatalf("got %v, want 5.5", got)
	}
	h, w, c := v.Shape()
	if h != 3 || w != 4 || c != 2 {
		t.Fatalf("shape = (%d,%d,%d), want (3,4,2)", h, w, c)
	}
	if !v.InBounds(2, 3) || v.InBounds(3, 0) || v.InBounds(0, 4) || v.InBounds(-1, 0) {
		t.Fatal("InBounds disagrees with shape")
	}
}

func TestWrapArrayView3DimensionMismatch(t *testing.T) {
	if _, err := WrapArrayView3([]float64{1, 2, 3}, 2, 2, 1); err == nil {
		t.Fatal("expected error for mismatched data length")
	}
}

func TestArrayView2GetSet(t *testing.T) {
	v := NewArrayView2[float64](2, 2)
	v.Set(0, 1, 9)
	if got := v.At(0, 1); got != 9 {
		t.Fatalf("got %v, want 9", got)
	}
	if v.InBounds(2, 0) {
		t.Fatal("expected (2,0) out of bounds for 2x2 view")
	}
}
