package inpaint

import "container/heap"

// InpaintTelea reconstructs every masked pixel of img in place, marching
// inward from the boundary of the masked region with Telea's Fast
// Marching Method. mask is read-only: a pixel is
// masked iff its value exceeds 0.5. radius (eps) bounds the disk of Known
// neighbors the interpolator draws from when finalizing a pixel.
//
// Validation happens entirely before the heap loop starts: once it has
// started, InpaintTelea cannot fail.
func InpaintTelea[F Scalar](img *ArrayView3[F], mask *ArrayView2[F], radius int) error {
	_, err := inpaintTelea(img, mask, radius)
	return err
}

// InpaintTeleaWithTField behaves exactly like InpaintTelea but additionally
// returns the arrival-time field it converged to, for callers that want to
// inspect or visualize the march (e.g. a debug heatmap of T).
func InpaintTeleaWithTField[F Scalar](img *ArrayView3[F], mask *ArrayView2[F], radius int) (*TField, error) {
	return inpaintTelea(img, mask, radius)
}

func inpaintTelea[F Scalar](img *ArrayView3[F], mask *ArrayView2[F], radius int) (*TField, error) {
	h, w, c := img.Shape()
	if h == 0 || w == 0 || c == 0 {
		return nil, ErrEmptyImage
	}
	mh, mw := mask.Shape()
	if mh != h || mw != w {
		return nil, ErrDimensionMismatch
	}
	if radius < 1 {
		return nil, ErrInvalidRadius
	}

	flags := newFlagField(h, w)
	t := newTField(h, w)
	initFlagsAndT(flags, t, mask, h, w)

	band := &bandHeap{}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if flags.At(y, x) == Band {
				heap.Push(band, heapEntry{t: 0, y: y, x: x})
			}
		}
	}

	for band.Len() > 0 {
		entry := heap.Pop(band).(heapEntry)
		y, x := entry.y, entry.x
		if flags.At(y, x) != Band {
			continue // lazy deletion: a fresher entry already finalized this pixel
		}
		flags.Set(y, x, Known)
		interpolateAt(img, flags, t, h, w, c, y, x, radius)

		for _, n := range neighbors4(y, x, h, w) {
			ny, nx := n[0], n[1]
			if flags.At(ny, nx) == Known {
				continue
			}
			tNew := solveEikonal(flags, t, h, w, ny, nx)
			if tNew < t.At(ny, nx) {
				t.Set(ny, nx, tNew)
				if flags.At(ny, nx) == Unknown {
					flags.Set(ny, nx, Band)
				}
				heap.Push(band, heapEntry{t: tNew, y: ny, x: nx})
			}
		}
	}

	return t, nil
}
