package inpaint

import "fmt"

// Scalar is the set of floating-point element types a channel may hold.
// The driver and interpolator always accumulate in float64 internally
// (see interpolate.go) regardless of which Scalar the caller's arrays use,
// so a float32 image loses no more precision than it already carries.
type Scalar interface {
	~float32 | ~float64
}

// ArrayView3 is a dense (H, W, C) row-major view over a multi-channel
// image with an InBounds predicate; At and Set do not check each axis
// themselves. It owns its backing slice; callers build one with
// NewArrayView3 or wrap an existing slice with WrapArrayView3.
type ArrayView3[F Scalar] struct {
	h, w, c int
	data    []F
}

// NewArrayView3 allocates a zeroed (h, w, c) array view.
func NewArrayView3[F Scalar](h, w, c int) *ArrayView3[F] {
	return &ArrayView3[F]{h: h, w: w, c: c, data: make([]F, h*w*c)}
}

// WrapArrayView3 wraps an existing row-major (h, w, c) slice without
// copying. It returns an error if data's length doesn't match h*w*c.
func WrapArrayView3[F Scalar](data []F, h, w, c int) (*ArrayView3[F], error) {
	if len(data) != h*w*c {
		return nil, fmt.Errorf("inpaint: data has length %d, want %d for shape (%d, %d, %d)", len(data), h*w*c, h, w, c)
	}
	return &ArrayView3[F]{h: h, w: w, c: c, data: data}, nil
}

// Shape returns the view's (height, width, channels).
func (v *ArrayView3[F]) Shape() (h, w, c int) { return v.h, v.w, v.c }

// InBounds reports whether (y, x) is a valid pixel coordinate.
func (v *ArrayView3[F]) InBounds(y, x int) bool {
	return y >= 0 && y < v.h && x >= 0 && x < v.w
}

func (v *ArrayView3[F]) offset(y, x, c int) int {
	return (y*v.w+x)*v.c + c
}

// At returns the value of channel c at (y, x). It does not check y, x and
// c separately: it panics only when the flat offset falls outside the
// backing slice, and an out-of-range x or c that still lands inside it
// reads another element. Callers guard with InBounds first.
func (v *ArrayView3[F]) At(y, x, c int) F {
	return v.data[v.offset(y, x, c)]
}

// Set writes the value of channel c at (y, x).
func (v *ArrayView3[F]) Set(y, x, c int, val F) {
	v.data[v.offset(y, x, c)] = val
}

// ArrayView2 is a dense (H, W) row-major scalar view, used for the mask
// (the flag field and T field have their own types). Like ArrayView3, its
// At and Set do not check each axis themselves.
type ArrayView2[F Scalar] struct {
	h, w int
	data []F
}

// NewArrayView2 allocates a zeroed (h, w) array view.
func NewArrayView2[F Scalar](h, w int) *ArrayView2[F] {
	return &ArrayView2[F]{h: h, w: w, data: make([]F, h*w)}
}

// WrapArrayView2 wraps an existing row-major (h, w) slice without copying.
func WrapArrayView2[F Scalar](data []F, h, w int) (*ArrayView2[F], error) {
	if len(data) != h*w {
		return nil, fmt.Errorf("inpaint: data has length %d, want %d for shape (%d, %d)", len(data), h*w, h, w)
	}
	return &ArrayView2[F]{h: h, w: w, data: data}, nil
}

// Shape returns the view's (height, width).
func (v *ArrayView2[F]) Shape() (h, w int) { return v.h, v.w }

// InBounds reports whether (y, x) is a valid coordinate.
func (v *ArrayView2[F]) InBounds(y, x int) bool {
	return y >= 0 && y < v.h && x >= 0 && x < v.w
}

// At returns the scalar at (y, x).
func (v *ArrayView2[F]) At(y, x int) F {
	return v.data[y*v.w+x]
}

// Set writes the scalar at (y, x).
func (v *ArrayView2[F]) Set(y, x int, val F) {
	v.data[y*v.w+x] = val
}
