package stdimg

import (
	"fmt"
	"image"
	"image/color"
	"io/ioutil"
	"log"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/Fepozopo/teleafmm/pkg/inpaint"
)

// loadFace loads a font face from fontPath (TTF/OTF), falling back to the
// built-in basic font if fontPath is empty or fails to load or parse.
func loadFace(fontPath string, size float64) font.Face {
	if fontPath == "" {
		return basicfont.Face7x13
	}
	data, err := ioutil.ReadFile(fontPath)
	if err != nil {
		log.Printf("failed to read font file %s: %v, falling back to basic font", fontPath, err)
		return basicfont.Face7x13
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		log.Printf("failed to parse font: %v, falling back to basic", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("failed to create font face: %v, falling back to basic", err)
		return basicfont.Face7x13
	}
	return face
}

// heatColor maps t in [0,1] to a blue-to-red ramp reminiscent of a
// viridis-style heatmap, without pulling in a palette dependency.
func heatColor(t float64) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	r := uint8(clampFloatToUint8(255 * math.Min(1, 2*t)))
	b := uint8(clampFloatToUint8(255 * math.Min(1, 2*(1-t))))
	g := uint8(clampFloatToUint8(255 * (1 - math.Abs(2*t-1))))
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// VisualizeTField renders t as a grayscale/heatmap image the same
// dimensions as the field: unreached pixels (still at T's sentinel value)
// render black, and reached pixels are scaled to the observed [0, max]
// range and mapped through heatColor. It is meant for eyeballing whether
// the march's T values grow monotonically outward from a mask boundary.
func VisualizeTField(t *inpaint.TField) *image.NRGBA {
	h, w := t.Shape()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	sentinel := t.Sentinel()

	max := 0.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := t.At(y, x)
			if v < sentinel && v > max {
				max = v
			}
		}
	}
	if max <= 0 {
		max = 1
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := t.At(y, x)
			i := out.PixOffset(x, y)
			if v >= sentinel {
				out.Pix[i+0], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = 0, 0, 0, 0xff
				continue
			}
			c := heatColor(v / max)
			out.Pix[i+0], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return out
}

// AnnotateTSamples overlays the numeric T value at a sparse grid of sample
// points (every stride pixels) onto a heatmap already produced by
// VisualizeTField, using the same font-rendering path a caller would use
// to label any other debug overlay. fontPath may be empty to use the
// built-in basic font.
func AnnotateTSamples(heatmap *image.NRGBA, t *inpaint.TField, stride int, fontPath string, size float64, col color.Color) (*image.NRGBA, error) {
	if heatmap == nil {
		return nil, fmt.Errorf("heatmap is nil")
	}
	if stride < 1 {
		stride = 1
	}
	out := CloneNRGBA(heatmap)
	face := loadFace(fontPath, size)
	h, w := t.Shape()
	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(col),
		Face: face,
	}
	sentinel := t.Sentinel()
	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			v := t.At(y, x)
			if v >= sentinel {
				continue
			}
			d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
			d.DrawString(fmt.Sprintf("%.1f", v))
		}
	}
	return out, nil
}
