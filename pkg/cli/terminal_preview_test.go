package cli

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"os"
	"strings"
	"testing"
)

// newMaskPreview builds a tiny RGBA image standing in for a painted mask or
// a T-field heatmap frame, the two kinds of image the inpaint REPL previews
// besides the source photo itself.
func newMaskPreview(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				img.Set(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}
	return img
}

func withInlineCapableTerm(t *testing.T) func() {
	t.Helper()
	oldProgram := os.Getenv("TERM_PROGRAM")
	oldTerm := os.Getenv("TERM")
	os.Setenv("TERM_PROGRAM", "WezTerm")
	os.Setenv("TERM", "xterm-256color")
	return func() {
		if oldProgram == "" {
			os.Unsetenv("TERM_PROGRAM")
		} else {
			os.Setenv("TERM_PROGRAM", oldProgram)
		}
		if oldTerm == "" {
			os.Unsetenv("TERM")
		} else {
			os.Setenv("TERM", oldTerm)
		}
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	os.Stdout = w
	fn()
	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout
	return buf.String()
}

// TestPreviewMaskInlineSequence verifies that previewing a painted-mask frame
// emits an inline-image OSC sequence when the terminal advertises inline
// image support (the path the REPL takes after every 'm' command).
func TestPreviewMaskInlineSequence(t *testing.T) {
	restore := withInlineCapableTerm(t)
	defer restore()

	mask := newMaskPreview(2, 2)
	out := captureStdout(t, func() {
		if err := PreviewImage(mask, "png"); err != nil {
			t.Fatalf("PreviewImage error: %v", err)
		}
	})

	if !strings.Contains(out, "\x1b]1337") {
		t.Fatalf("expected inline 1337 sequence in output, got: %q", out)
	}
}

// TestPreviewEncodesJPEG ensures that previewing in "jpeg" format (the
// format tag LoadImage reports for JPEG sources) round-trips through a real
// JPEG encoder rather than silently falling back to PNG.
func TestPreviewEncodesJPEG(t *testing.T) {
	restore := withInlineCapableTerm(t)
	defer restore()

	img := newMaskPreview(4, 4)
	out := captureStdout(t, func() {
		if err := PreviewImage(img, "jpeg"); err != nil {
			t.Fatalf("PreviewImage error: %v", err)
		}
	})

	idx := strings.Index(out, ":")
	if idx < 0 {
		t.Fatalf("no ':' found in output: %q", out)
	}
	payload := out[idx+1:]
	if bi := strings.Index(payload, "\a"); bi >= 0 {
		payload = payload[:bi]
	}
	if bi := strings.Index(payload, "\x1b"); bi >= 0 {
		payload = payload[:bi]
	}
	dec, derr := base64.StdEncoding.DecodeString(payload)
	if derr != nil {
		t.Fatalf("base64 decode failed: %v", derr)
	}
	if len(dec) < 2 || dec[0] != 0xFF || dec[1] != 0xD8 {
		t.Fatalf("expected JPEG SOI bytes, got: %x", dec[:2])
	}
}

// TestComputePreviewSizeClampsLargePhoto checks that a full-size source
// photo (as opposed to a small mask/T-field frame) is clamped to the
// terminal-cell budget instead of requesting an oversized placement from
// the kitty/inline backends.
func TestComputePreviewSizeClampsLargePhoto(t *testing.T) {
	photo := image.NewRGBA(image.Rect(0, 0, 4000, 3000))
	size := computePreviewSize(photo)
	if size.Cols > 80 || size.Rows > 40 {
		t.Fatalf("expected preview size clamped to <=80x40 cells, got %dx%d", size.Cols, size.Rows)
	}
	if size.Cols <= 0 || size.Rows <= 0 {
		t.Fatalf("expected positive preview size, got %dx%d", size.Cols, size.Rows)
	}
}

// TestComputePreviewSizeSmallMask checks that a tiny mask/T-field frame is
// not shrunk below the minimum legible cell budget.
func TestComputePreviewSizeSmallMask(t *testing.T) {
	mask := newMaskPreview(3, 3)
	size := computePreviewSize(mask)
	if size.Cols < 6 || size.Rows < 3 {
		t.Fatalf("expected preview size clamped up to minimum cells, got %dx%d", size.Cols, size.Rows)
	}
}
