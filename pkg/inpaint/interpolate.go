package inpaint

import "math"

// gradFloor is the small positive floor below which the T-field gradient
// is considered degenerate; w_dir is then forced to 1.
const gradFloor = 1e-6

// interpolateAt fills image[y, x, :] using Telea's weighted average over
// a radius-eps disk of Known neighbors. Weights and
// accumulators are computed in float64 regardless of F, narrowing back to
// F only on the final write — this is the "Scalar type abstraction"
// design note's precision requirement. If no Known neighbor falls inside
// the disk, the pixel's existing (residual) value is left untouched, the
// documented degenerate case.
func interpolateAt[F Scalar](view *ArrayView3[F], flags *FlagField, t *TField, h, w, numChannels, y, x, eps int) {
	gy, gx := tGradient(t, h, w, y, x)
	norm := math.Sqrt(gy*gy + gx*gx)
	dirIsFloor := norm < gradFloor
	var gyUnit, gxUnit float64
	if !dirIsFloor {
		gyUnit, gxUnit = gy/norm, gx/norm
	}

	tp := t.At(y, x)

	yMin, yMax := y-eps, y+eps
	xMin, xMax := x-eps, x+eps
	if yMin < 0 {
		yMin = 0
	}
	if xMin < 0 {
		xMin = 0
	}
	if yMax >= h {
		yMax = h - 1
	}
	if xMax >= w {
		xMax = w - 1
	}
	epsSq := float64(eps) * float64(eps)

	acc := make([]float64, numChannels)
	wsum := 0.0

	for qy := yMin; qy <= yMax; qy++ {
		for qx := xMin; qx <= xMax; qx++ {
			if flags.At(qy, qx) != Known {
				continue
			}
			ry := float64(y - qy)
			rx := float64(x - qx)
			d2 := ry*ry + rx*rx
			if d2 > epsSq || d2 == 0 {
				continue
			}

			var wDir float64
			if dirIsFloor {
				wDir = 1
			} else {
				rNorm := math.Sqrt(d2)
				wDir = math.Abs((ry/rNorm)*gyUnit + (rx/rNorm)*gxUnit)
			}
			wDst := 1.0 / d2
			wLev := 1.0 / (1.0 + math.Abs(t.At(qy, qx)-tp))
			weight := wDir * wDst * wLev

			for ch := 0; ch < numChannels; ch++ {
				igy, igx := imageGradientAt(view, flags, h, w, qy, qx, ch)
				contribution := float64(view.At(qy, qx, ch)) + igy*ry + igx*rx
				acc[ch] += weight * contribution
			}
			wsum += weight
		}
	}

	if wsum > 0 {
		for ch := 0; ch < numChannels; ch++ {
			view.Set(y, x, ch, F(acc[ch]/wsum))
		}
	}
}
