package stdimg

import (
	"image"
	"image/color"
	"math"
)

// color conversion helpers: sRGB -> linear -> XYZ -> Lab, used to judge
// perceptual similarity when growing a mask region from a seed click.
func srgbToLinear(c uint8) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToXyz(r, g, b float64) (x, y, z float64) {
	// sRGB D65 matrix
	x = 0.4124564*r + 0.3575761*g + 0.1804375*b
	y = 0.2126729*r + 0.7151522*g + 0.0721750*b
	z = 0.0193339*r + 0.1191920*g + 0.9503041*b
	return
}

func xyzToLab(x, y, z float64) (l, a, b float64) {
	xr := x / 0.95047
	yr := y / 1.00000
	zr := z / 1.08883
	f := func(t float64) float64 {
		if t > 0.008856 {
			return math.Pow(t, 1.0/3.0)
		}
		return 7.787037*t + 16.0/116.0
	}
	fx := f(xr)
	fy := f(yr)
	fz := f(zr)
	l = 116.0*fy - 16.0
	a = 500.0 * (fx - fy)
	b = 200.0 * (fy - fz)
	return
}

func rgbToLab(c color.NRGBA) (l, a, b float64) {
	r := srgbToLinear(c.R)
	g := srgbToLinear(c.G)
	bl := srgbToLinear(c.B)
	x, y, z := linearToXyz(r, g, bl)
	return xyzToLab(x, y, z)
}

func labDistanceSq(c1, c2 color.NRGBA) float64 {
	l1, a1, b1 := rgbToLab(c1)
	l2, a2, b2 := rgbToLab(c2)
	dl := l1 - l2
	da := a1 - a2
	db := b1 - b2
	return dl*dl + da*da + db*db
}

// PaintMask grows an inpainting mask from a seed pixel by perceptual (Lab)
// color similarity, the way an image editor's "magic wand" selects a region
// to erase. (x, y) is the seed point, fuzz is a Delta-E-ish tolerance
// (clamped to [0, 200]), and borderColor, if it has non-zero alpha or RGB,
// is treated as an uncrossable boundary instead of comparing against the
// seed's own color. If invert is true, the mask covers everything outside
// the matched region instead of the region itself.
//
// The mask is returned as an *image.Gray the same size as src, where a
// pixel value > 127 means "masked" (matches the inpaint package's own
// >0.5 threshold once normalized to [0,1]). Use MaskFromGray to convert it
// into the inpaint.ArrayView2[float32] the core expects.
func PaintMask(src *image.NRGBA, fuzz float64, borderColor color.NRGBA, x, y int, invert bool) *image.Gray {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w := b.Dx()
	h := b.Dy()
	if x < b.Min.X {
		x = b.Min.X
	}
	if x >= b.Max.X {
		x = b.Max.X - 1
	}
	if y < b.Min.Y {
		y = b.Min.Y
	}
	if y >= b.Max.Y {
		y = b.Max.Y - 1
	}

	size := w * h
	maskBytes := (size + 7) / 8
	bits := make([]byte, maskBytes)

	getMask := func(i int) byte { return (bits[i>>3] >> (uint(i) & 7)) & 1 }
	setMask := func(i int) { bits[i>>3] |= 1 << (uint(i) & 7) }
	clearMask := func(i int) { bits[i>>3] &^= 1 << (uint(i) & 7) }
	idxOf := func(px, py int) int { return (py-b.Min.Y)*w + (px - b.Min.X) }

	start := samplePixelClamped(src, x, y)
	useBorder := !(borderColor.R == 0 && borderColor.G == 0 && borderColor.B == 0 && borderColor.A == 0)

	if fuzz < 0 {
		fuzz = 0
	}
	if fuzz > 200 {
		fuzz = 200
	}
	fuzzSq := fuzz * fuzz

	var isBoundary func(c color.NRGBA) bool
	if useBorder {
		isBoundary = func(c color.NRGBA) bool { return labDistanceSq(c, borderColor) <= fuzzSq }
	} else {
		isBoundary = func(c color.NRGBA) bool { return false }
	}

	matchesTarget := func(c color.NRGBA) bool {
		if useBorder {
			return !isBoundary(c)
		}
		return labDistanceSq(c, start) <= fuzzSq
	}

	if !useBorder && invert {
		for py := b.Min.Y; py < b.Max.Y; py++ {
			for px := b.Min.X; px < b.Max.X; px++ {
				i := idxOf(px, py)
				if matchesTarget(samplePixelClamped(src, px, py)) {
					setMask(i)
				}
			}
		}
	} else {
		type seed struct{ x, y int }
		stackSeeds := make([]seed, 0, 1024)
		stackSeeds = append(stackSeeds, seed{x: x, y: y})
		minX, maxX := b.Min.X, b.Max.X
		minY, maxY := b.Min.Y, b.Max.Y
		for len(stackSeeds) > 0 {
			s := stackSeeds[len(stackSeeds)-1]
			stackSeeds = stackSeeds[:len(stackSeeds)-1]
			sx, sy := s.x, s.y
			if sx < minX || sx >= maxX || sy < minY || sy >= maxY {
				continue
			}
			i0 := idxOf(sx, sy)
			if getMask(i0) == 1 {
				continue
			}
			c0 := samplePixelClamped(src, sx, sy)
			if isBoundary(c0) || !matchesTarget(c0) {
				continue
			}
			xl := sx
			for xl-1 >= minX {
				i := idxOf(xl-1, sy)
				if getMask(i) == 1 {
					break
				}
				c := samplePixelClamped(src, xl-1, sy)
				if isBoundary(c) || !matchesTarget(c) {
					break
				}
				xl--
			}
			xr := sx
			for xr+1 < maxX {
				i := idxOf(xr+1, sy)
				if getMask(i) == 1 {
					break
				}
				c := samplePixelClamped(src, xr+1, sy)
				if isBoundary(c) || !matchesTarget(c) {
					break
				}
				xr++
			}
			for xi := xl; xi <= xr; xi++ {
				setMask(idxOf(xi, sy))
			}
			for adjY := sy - 1; adjY <= sy+1; adjY += 2 {
				if adjY < minY || adjY >= maxY {
					continue
				}
				startX := xl - 1
				if startX < minX {
					startX = minX
				}
				endX := xr + 1
				if endX >= maxX {
					endX = maxX - 1
				}
				xi := startX
				for xi <= endX {
					idx := idxOf(xi, adjY)
					if getMask(idx) == 1 {
						xi++
						continue
					}
					c := samplePixelClamped(src, xi, adjY)
					if isBoundary(c) || !matchesTarget(c) {
						xi++
						continue
					}
					stackSeeds = append(stackSeeds, seed{x: xi, y: adjY})
					for xi++; xi <= endX; xi++ {
						idx2 := idxOf(xi, adjY)
						if getMask(idx2) == 1 {
							break
						}
						c2 := samplePixelClamped(src, xi, adjY)
						if isBoundary(c2) || !matchesTarget(c2) {
							break
						}
					}
				}
			}
		}
	}

	if invert {
		for i := 0; i < size; i++ {
			if getMask(i) == 1 {
				clearMask(i)
			} else {
				setMask(i)
			}
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			i := idxOf(px, py)
			v := uint8(0)
			if getMask(i) == 1 {
				v = 255
			}
			out.SetGray(px-b.Min.X, py-b.Min.Y, color.Gray{Y: v})
		}
	}
	return out
}
