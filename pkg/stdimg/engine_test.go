package stdimg

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

func TestEngineResize(t *testing.T) {
	src := makeSolidNRGBA(40, 20, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	out, err := ApplyCommandStdlib(src, "resize", []string{"20", "10"})
	if err != nil {
		t.Fatalf("resize failed: %v", err)
	}
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 10 {
		t.Fatalf("resize produced %v, want 20x10", out.Bounds())
	}
}

func TestEngineThresholdBinarizesMask(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	grays := []uint8{0, 80, 200, 255}
	for x, g := range grays {
		i := src.PixOffset(x, 0)
		src.Pix[i+0], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = g, g, g, 255
	}
	out, err := ApplyCommandStdlib(src, "threshold", []string{"128"})
	if err != nil {
		t.Fatalf("threshold failed: %v", err)
	}
	nrgba, ok := out.(*image.NRGBA)
	if !ok {
		t.Fatalf("expected *image.NRGBA output")
	}
	want := []uint8{0, 0, 255, 255}
	for x, w := range want {
		i := nrgba.PixOffset(x, 0)
		if nrgba.Pix[i] != w {
			t.Fatalf("pixel %d = %d, want %d", x, nrgba.Pix[i], w)
		}
	}
}

func TestEnginePaintmaskSelectsSeedRegion(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			i := src.PixOffset(x, y)
			if x < 3 {
				src.Pix[i+0], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 255, 0, 0, 255
			} else {
				src.Pix[i+0], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 0, 0, 255, 255
			}
		}
	}
	out, err := ApplyCommandStdlib(src, "paintmask", []string{"10", "", "0", "0", "false"})
	if err != nil {
		t.Fatalf("paintmask failed: %v", err)
	}
	gray, ok := out.(*image.Gray)
	if !ok {
		t.Fatalf("expected *image.Gray mask output, got %T", out)
	}
	if gray.GrayAt(0, 0).Y != 255 {
		t.Fatalf("seed pixel should be masked")
	}
	if gray.GrayAt(5, 5).Y != 0 {
		t.Fatalf("far pixel should not be masked")
	}
}

func TestEngineInpaintReconstructsMaskedRegion(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i+0], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 128, 128, 128, 255
		}
	}
	mask := image.NewGray(image.Rect(0, 0, 9, 9))
	for y := 3; y <= 5; y++ {
		for x := 3; x <= 5; x++ {
			mask.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	f, err := os.CreateTemp("", "mask-*.png")
	if err != nil {
		t.Fatalf("failed to create temp mask file: %v", err)
	}
	defer os.Remove(f.Name())
	if err := png.Encode(f, mask); err != nil {
		t.Fatalf("failed to encode mask: %v", err)
	}
	f.Close()

	out, err := ApplyCommandStdlib(src, "inpaint", []string{"3", f.Name()})
	if err != nil {
		t.Fatalf("inpaint failed: %v", err)
	}
	nrgba, ok := out.(*image.NRGBA)
	if !ok {
		t.Fatalf("expected *image.NRGBA output")
	}
	i := nrgba.PixOffset(4, 4)
	if nrgba.Pix[i] < 100 || nrgba.Pix[i] > 156 {
		t.Fatalf("center pixel = %d, want close to surrounding 128", nrgba.Pix[i])
	}
}

func TestEngineVisualizeReturnsHeatmap(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 7, 7))
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i+0], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 200, 200, 200, 255
		}
	}
	mask := image.NewGray(image.Rect(0, 0, 7, 7))
	mask.SetGray(3, 3, color.Gray{Y: 255})
	f, err := os.CreateTemp("", "mask-*.png")
	if err != nil {
		t.Fatalf("failed to create temp mask file: %v", err)
	}
	defer os.Remove(f.Name())
	if err := png.Encode(f, mask); err != nil {
		t.Fatalf("failed to encode mask: %v", err)
	}
	f.Close()

	out, err := ApplyCommandStdlib(src, "visualize", []string{"3", f.Name()})
	if err != nil {
		t.Fatalf("visualize failed: %v", err)
	}
	nrgba, ok := out.(*image.NRGBA)
	if !ok {
		t.Fatalf("expected *image.NRGBA output")
	}
	if nrgba.Bounds().Dx() != 7 || nrgba.Bounds().Dy() != 7 {
		t.Fatalf("visualize output bounds mismatch: %v", nrgba.Bounds())
	}
}

func TestEngineIdentifyReturnsNil(t *testing.T) {
	src := makeSolidNRGBA(5, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	out, err := ApplyCommandStdlib(src, "identify", nil)
	if err != nil {
		t.Fatalf("identify failed: %v", err)
	}
	if out != nil {
		t.Fatalf("identify should return nil image")
	}
}

func TestEngineUnsupportedCommand(t *testing.T) {
	src := makeSolidNRGBA(3, 3, color.NRGBA{A: 255})
	if _, err := ApplyCommandStdlib(src, "bogus", nil); err == nil {
		t.Fatalf("expected error for unsupported command")
	}
}
