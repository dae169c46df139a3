package stdimg

import (
	"image"
	"image/color"
	"os"

	"github.com/Fepozopo/teleafmm/pkg/inpaint"
)

// zeroNRGBA is the sentinel "no border color set" value paintmask treats
// as "grow by seed-color match" rather than "stop at this border".
var zeroNRGBA = color.NRGBA{}

// ToNRGBA converts any image.Image to *image.NRGBA (non-premultiplied RGBA).
func ToNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	if n, ok := src.(*image.NRGBA); ok {
		// return a copy to avoid modifying original
		out := image.NewNRGBA(n.Rect)
		copy(out.Pix, n.Pix)
		return out
	}
	b := src.Bounds()
	out := image.NewNRGBA(b)
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, b_, a := src.At(x, y).RGBA()
			// r,g,b,a are 16-bit [0, 65535]; convert to 8-bit
			out.Pix[idx+0] = uint8(r >> 8)
			out.Pix[idx+1] = uint8(g >> 8)
			out.Pix[idx+2] = uint8(b_ >> 8)
			out.Pix[idx+3] = uint8(a >> 8)
			idx += 4
		}
	}
	return out
}

// CloneNRGBA returns a copy of the provided image.NRGBA
func CloneNRGBA(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := image.NewNRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// samplePixelClamped returns the color.NRGBA at integer coords clamped to image.
func samplePixelClamped(img *image.NRGBA, x, y int) color.NRGBA {
	b := img.Bounds()
	x = clampInt(x, b.Min.X, b.Max.X-1)
	y = clampInt(y, b.Min.Y, b.Max.Y-1)
	i := img.PixOffset(x, y)
	return color.NRGBA{img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

// NRGBAToView packs src's R, G, B channels (alpha is dropped; inpainting
// operates on color, not transparency) into an inpaint.ArrayView3[float32]
// with values normalized to [0,1], row-major, 3 channels.
func NRGBAToView(src *image.NRGBA) *inpaint.ArrayView3[float32] {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	view := inpaint.NewArrayView3[float32](h, w, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := samplePixelClamped(src, b.Min.X+x, b.Min.Y+y)
			view.Set(y, x, 0, float32(c.R)/255.0)
			view.Set(y, x, 1, float32(c.G)/255.0)
			view.Set(y, x, 2, float32(c.B)/255.0)
		}
	}
	return view
}

// ViewToNRGBA unpacks a 3-channel [0,1]-normalized ArrayView3 back into an
// opaque *image.NRGBA of the same dimensions.
func ViewToNRGBA(view *inpaint.ArrayView3[float32]) *image.NRGBA {
	h, w, _ := view.Shape()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := out.PixOffset(x, y)
			out.Pix[i+0] = uint8(clampFloatToUint8(float64(view.At(y, x, 0)) * 255.0))
			out.Pix[i+1] = uint8(clampFloatToUint8(float64(view.At(y, x, 1)) * 255.0))
			out.Pix[i+2] = uint8(clampFloatToUint8(float64(view.At(y, x, 2)) * 255.0))
			out.Pix[i+3] = 0xff
		}
	}
	return out
}

// MaskFromGray converts a mask image (as produced by PaintMask, where a
// pixel value > 127 means masked) into the inpaint.ArrayView2[float32]
// InpaintTelea expects, where masked pixels carry 1.0 and the rest 0.0.
func MaskFromGray(mask *image.Gray) *inpaint.ArrayView2[float32] {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	view := inpaint.NewArrayView2[float32](h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			if g > 127 {
				view.Set(y, x, 1.0)
			}
		}
	}
	return view
}

// toGray converts any image.Image to *image.Gray using Rec.709 luminance,
// for feeding mask images (which may be decoded as NRGBA/PNG) into
// MaskFromGray.
func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			lum := uint8((0.2126*float64(r>>8) + 0.7152*float64(g>>8) + 0.0722*float64(bl>>8)))
			out.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: lum})
		}
	}
	return out
}

// decodeImageFile opens and decodes an image file from disk in any
// registered format (PNG/JPEG/GIF).
func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// thresholdImage binarizes src: pixels at or above value (0..255) become
// white, the rest black. When perChannel is true, the comparison and
// output are done independently per R/G/B channel instead of by
// Rec.709 luminance.
func thresholdImage(src *image.NRGBA, value float64, perChannel bool) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := src.PixOffset(x, y)
			r, g, bl, a := src.Pix[i+0], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]
			oi := out.PixOffset(x, y)
			if perChannel {
				out.Pix[oi+0] = binarize(r, value)
				out.Pix[oi+1] = binarize(g, value)
				out.Pix[oi+2] = binarize(bl, value)
				out.Pix[oi+3] = a
				continue
			}
			lum := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(bl)
			v := uint8(0)
			if lum >= value {
				v = 255
			}
			out.Pix[oi+0] = v
			out.Pix[oi+1] = v
			out.Pix[oi+2] = v
			out.Pix[oi+3] = a
		}
	}
	return out
}

func binarize(c uint8, value float64) uint8 {
	if float64(c) >= value {
		return 255
	}
	return 0
}

func makeSolidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}
