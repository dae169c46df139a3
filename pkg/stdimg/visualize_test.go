package stdimg

import (
	"image"
	"image/color"
	"testing"

	"github.com/Fepozopo/teleafmm/pkg/inpaint"
)

func TestVisualizeTFieldUnreachedPixelsAreBlack(t *testing.T) {
	view := inpaint.NewArrayView3[float32](5, 5, 1)
	mask := inpaint.NewArrayView2[float32](5, 5)
	// full mask: there is no Band pixel, so the march never starts and T
	// stays at its sentinel everywhere.
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			mask.Set(y, x, 1)
		}
	}
	tField, err := inpaint.InpaintTeleaWithTField(view, mask, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := VisualizeTField(tField)
	i := out.PixOffset(2, 2)
	if out.Pix[i+0] != 0 || out.Pix[i+1] != 0 || out.Pix[i+2] != 0 {
		t.Fatalf("unreached pixel should render black, got (%d,%d,%d)", out.Pix[i], out.Pix[i+1], out.Pix[i+2])
	}
}

func TestVisualizeTFieldReachedPixelsVary(t *testing.T) {
	view := inpaint.NewArrayView3[float32](9, 9, 1)
	mask := inpaint.NewArrayView2[float32](9, 9)
	for y := 3; y <= 5; y++ {
		for x := 3; x <= 5; x++ {
			mask.Set(y, x, 1)
		}
	}
	tField, err := inpaint.InpaintTeleaWithTField(view, mask, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := VisualizeTField(tField)
	center := out.PixOffset(4, 4)
	corner := out.PixOffset(0, 0)
	if out.Pix[center+0] == out.Pix[corner+0] &&
		out.Pix[center+1] == out.Pix[corner+1] &&
		out.Pix[center+2] == out.Pix[corner+2] {
		t.Fatalf("expected center (later arrival) to render differently from a Known corner (T = 0)")
	}
}

func TestAnnotateTSamplesDrawsOnHeatmap(t *testing.T) {
	heatmap := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for i := range heatmap.Pix {
		heatmap.Pix[i] = 0
	}
	view := inpaint.NewArrayView3[float32](9, 9, 1)
	mask := inpaint.NewArrayView2[float32](9, 9)
	mask.Set(4, 4, 1)
	tField, err := inpaint.InpaintTeleaWithTField(view, mask, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := AnnotateTSamples(heatmap, tField, 2, "", 12, color.White)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Bounds() != heatmap.Bounds() {
		t.Fatalf("annotated image bounds changed: %v", out.Bounds())
	}
}
