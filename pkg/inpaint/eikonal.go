package inpaint

import "math"

// solveEikonal computes the candidate T for pixel (y, x) from its Known
// 4-neighbors, per the upwind discretization of |grad T| = 1. It never
// mutates flags or t; the caller decides whether to accept the result.
func solveEikonal(flags *FlagField, t *TField, h, w, y, x int) float64 {
	inf := tInf(h, w)

	th := inf
	if x-1 >= 0 && flags.At(y, x-1) == Known {
		if v := t.At(y, x-1); v < th {
			th = v
		}
	}
	if x+1 < w && flags.At(y, x+1) == Known {
		if v := t.At(y, x+1); v < th {
			th = v
		}
	}

	tv := inf
	if y-1 >= 0 && flags.At(y-1, x) == Known {
		if v := t.At(y-1, x); v < tv {
			tv = v
		}
	}
	if y+1 < h && flags.At(y+1, x) == Known {
		if v := t.At(y+1, x); v < tv {
			tv = v
		}
	}

	hHas := th < inf
	vHas := tv < inf

	if hHas && vHas {
		diff := th - tv
		r := 2 - diff*diff
		if r > 0 {
			sq := math.Sqrt(r)
			if s := (th + tv - sq) / 2; s >= th && s >= tv {
				return s
			}
			if s := (th + tv + sq) / 2; s >= th && s >= tv {
				return s
			}
		}
		// Degenerate quadratic: fall through to the single-axis update
		// using the smaller of the two known axis times.
		if th < tv {
			return th + 1
		}
		return tv + 1
	}
	if hHas {
		return th + 1
	}
	if vHas {
		return tv + 1
	}
	return inf
}
