package stdimg

import (
	"image"
	"image/color"
	"testing"
)

func TestPaintMaskMatchesSeedRegion(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			i := src.PixOffset(x, y)
			// left half red, right half blue
			if x < 3 {
				src.Pix[i+0], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 255, 0, 0, 255
			} else {
				src.Pix[i+0], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 0, 0, 255, 255
			}
		}
	}

	mask := PaintMask(src, 10, color.NRGBA{}, 0, 0, false)
	if mask == nil {
		t.Fatal("mask nil")
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			v := mask.GrayAt(x, y).Y
			wantMasked := x < 3
			gotMasked := v > 127
			if gotMasked != wantMasked {
				t.Fatalf("pixel (%d,%d): mask=%d want masked=%v", x, y, v, wantMasked)
			}
		}
	}
}

func TestPaintMaskInvert(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i+0], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 10, 10, 10, 255
	}
	normal := PaintMask(src, 5, color.NRGBA{}, 0, 0, false)
	inverted := PaintMask(src, 5, color.NRGBA{}, 0, 0, true)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if normal.GrayAt(x, y).Y == inverted.GrayAt(x, y).Y {
				t.Fatalf("expected inverted mask to differ at (%d,%d)", x, y)
			}
		}
	}
}
