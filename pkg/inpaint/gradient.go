package inpaint

// tGradient estimates the gradient of the T field at (y, x) by central
// difference, clipped to the image. Each term is
// replaced by T[p] when the corresponding neighbor is out of bounds, and
// substituted with a one-sided difference when one side is Unknown with
// T == T_INF. The returned vector is (-dT/dy, dT/dx) — the sign/swap
// matches Telea's convention so that r-hat . grad-T-hat peaks for
// neighbors along the level-set normal.
func tGradient(t *TField, h, w, y, x int) (gy, gx float64) {
	inf := tInf(h, w)
	tp := t.At(y, x)

	var xPrev, xNext float64
	xPrevOK, xNextOK := false, false
	if x-1 >= 0 {
		xPrev, xPrevOK = t.At(y, x-1), true
	}
	if x+1 < w {
		xNext, xNextOK = t.At(y, x+1), true
	}
	dx := centralDiff(tp, xPrev, xPrevOK, xNext, xNextOK, inf)

	var yPrev, yNext float64
	yPrevOK, yNextOK := false, false
	if y-1 >= 0 {
		yPrev, yPrevOK = t.At(y-1, x), true
	}
	if y+1 < h {
		yNext, yNextOK = t.At(y+1, x), true
	}
	dy := centralDiff(tp, yPrev, yPrevOK, yNext, yNextOK, inf)

	return -dy, dx
}

// centralDiff computes (next-prev)/2, substituting center for a missing
// (out-of-bounds) side and falling back to a one-sided difference when
// one present side is still at the T_INF sentinel.
func centralDiff(center, prev float64, prevOK bool, next float64, nextOK bool, inf float64) float64 {
	if !prevOK {
		prev = center
	}
	if !nextOK {
		next = center
	}
	prevUnknown := prevOK && prev >= inf
	nextUnknown := nextOK && next >= inf
	switch {
	case prevUnknown && nextUnknown:
		return 0
	case prevUnknown:
		return next - center
	case nextUnknown:
		return center - prev
	default:
		return (next - prev) / 2
	}
}

// imageGradientAt estimates the image gradient of channel c at the Known
// pixel (y, x), central-differenced across Known-only neighbors. It
// defaults to zero when all surrounding neighbors are Unknown.
func imageGradientAt[F Scalar](view *ArrayView3[F], flags *FlagField, h, w, y, x, c int) (gy, gx float64) {
	center := float64(view.At(y, x, c))

	knownAt := func(yy, xx int) (float64, bool) {
		if yy < 0 || yy >= h || xx < 0 || xx >= w {
			return 0, false
		}
		if flags.At(yy, xx) != Known {
			return 0, false
		}
		return float64(view.At(yy, xx, c)), true
	}

	xPrev, xPrevOK := knownAt(y, x-1)
	xNext, xNextOK := knownAt(y, x+1)
	switch {
	case xPrevOK && xNextOK:
		gx = (xNext - xPrev) / 2
	case xNextOK:
		gx = xNext - center
	case xPrevOK:
		gx = center - xPrev
	default:
		gx = 0
	}

	yPrev, yPrevOK := knownAt(y-1, x)
	yNext, yNextOK := knownAt(y+1, x)
	switch {
	case yPrevOK && yNextOK:
		gy = (yNext - yPrev) / 2
	case yNextOK:
		gy = yNext - center
	case yPrevOK:
		gy = center - yPrev
	default:
		gy = 0
	}

	return gy, gx
}
