package inpaint

// TField is the per-pixel approximate arrival time from the initial
// boundary. It is always float64 internally: weights
// and accumulators must be computed in at least 32-bit precision
// regardless of the image's element type, and T itself never needs to be
// narrower than that.
type TField struct {
	h, w int
	data []float64
}

func newTField(h, w int) *TField {
	return &TField{h: h, w: w, data: make([]float64, h*w)}
}

// At returns T at (y, x).
func (t *TField) At(y, x int) float64 { return t.data[y*t.w+x] }

// Set writes T at (y, x).
func (t *TField) Set(y, x int, v float64) { t.data[y*t.w+x] = v }

// Shape returns the field's (height, width).
func (t *TField) Shape() (h, w int) { return t.h, t.w }

// Sentinel returns the T_INF value that masked pixels keep when the march
// never reaches them (for example every pixel of a fully masked image).
// Unmasked pixels start at T = 0, so an empty mask leaves no pixel at T_INF.
func (t *TField) Sentinel() float64 { return tInf(t.h, t.w) }

// tInf is the sentinel value for unreached pixels: any finite quantity
// at least H*W is large enough that no accepted Eikonal solution, which
// grows by at most 1 per FMM step across an H*W grid, can reach it.
func tInf(h, w int) float64 {
	return float64(h * w)
}
