package inpaint

// Flag is a pixel's tri-state FMM label. A pixel's flag only ever
// progresses Unknown -> Band -> Known, never backwards.
type Flag uint8

const (
	// Unknown pixels are masked and have not yet been reached by the front.
	Unknown Flag = iota
	// Band pixels are in the narrow band: T is computed but not final.
	Band
	// Known pixels hold a finalized value and a finalized T.
	Known
)

// FlagField is a dense (H, W) grid of Flag values.
type FlagField struct {
	h, w int
	data []Flag
}

func newFlagField(h, w int) *FlagField {
	return &FlagField{h: h, w: w, data: make([]Flag, h*w)}
}

// At returns the flag at (y, x).
func (f *FlagField) At(y, x int) Flag { return f.data[y*f.w+x] }

// Set writes the flag at (y, x).
func (f *FlagField) Set(y, x int, v Flag) { f.data[y*f.w+x] = v }

// initFlagsAndT establishes the initial invariant:
// masked pixels start Unknown with T = T_INF; unmasked pixels start with
// T = 0 and are Band iff a 4-neighbor is masked, Known otherwise. Mask
// pixels touching the image border get no special treatment — a missing
// neighbor simply fails in-bounds and can't make a pixel Band.
func initFlagsAndT[F Scalar](flags *FlagField, t *TField, mask *ArrayView2[F], h, w int) {
	inf := tInf(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if float64(mask.At(y, x)) > 0.5 {
				flags.Set(y, x, Unknown)
				t.Set(y, x, inf)
				continue
			}
			t.Set(y, x, 0)
			band := false
			for _, n := range neighbors4(y, x, h, w) {
				if float64(mask.At(n[0], n[1])) > 0.5 {
					band = true
					break
				}
			}
			if band {
				flags.Set(y, x, Band)
			} else {
				flags.Set(y, x, Known)
			}
		}
	}
}

// neighbors4 returns the in-bounds 4-connected neighbors of (y, x).
func neighbors4(y, x, h, w int) [][2]int {
	out := make([][2]int, 0, 4)
	if y-1 >= 0 {
		out = append(out, [2]int{y - 1, x})
	}
	if y+1 < h {
		out = append(out, [2]int{y + 1, x})
	}
	if x-1 >= 0 {
		out = append(out, [2]int{y, x - 1})
	}
	if x+1 < w {
		out = append(out, [2]int{y, x + 1})
	}
	return out
}
