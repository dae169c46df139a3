package cli

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

// encodeTestJPEGWithOrientation writes a tiny JPEG to path with the given
// EXIF orientation tag (1..8) embedded in a minimal APP1/TIFF block ahead of
// the real JPEG stream produced by the standard encoder.
func encodeTestJPEGWithOrientation(t *testing.T, path string, orientation uint16) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.RGBA{200, 0, 0, 255})
		img.Set(x, 1, color.RGBA{0, 200, 0, 255})
	}
	var body bytes.Buffer
	if err := jpeg.Encode(&body, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg encode failed: %v", err)
	}
	plain := body.Bytes()
	if len(plain) < 4 || plain[0] != 0xFF || plain[1] != 0xD8 {
		t.Fatalf("unexpected jpeg header")
	}

	app1 := buildMinimalOrientationAPP1(orientation)

	out := make([]byte, 0, len(plain)+len(app1))
	out = append(out, plain[:2]...) // SOI
	out = append(out, app1...)
	out = append(out, plain[2:]...)

	if err := os.WriteFile(path, out, 0o644); err != nil {
		t.Fatalf("write jpeg failed: %v", err)
	}
}

// buildMinimalOrientationAPP1 builds an APP1 "Exif\0\0" segment containing a
// single IFD0 entry: tag 0x0112 (Orientation), type SHORT, count 1.
func buildMinimalOrientationAPP1(orientation uint16) []byte {
	const tiffStart = 10 // offset of "II*\0" within the APP1 payload (after marker+len+"Exif\0\0")

	tiff := make([]byte, 0, 32)
	tiff = append(tiff, 'I', 'I', 0x2A, 0x00) // little-endian, magic
	tiff = append(tiff, 8, 0, 0, 0)           // IFD0 offset = 8 (relative to tiff start)
	tiff = append(tiff, 1, 0)                // 1 entry
	// entry: tag(2) type(2) count(4) value(4)
	tiff = append(tiff, 0x12, 0x01) // tag 0x0112
	tiff = append(tiff, 3, 0)       // type SHORT
	tiff = append(tiff, 1, 0, 0, 0) // count 1
	valLo := byte(orientation & 0xFF)
	valHi := byte((orientation >> 8) & 0xFF)
	tiff = append(tiff, valLo, valHi, 0, 0) // value, padded to 4 bytes
	tiff = append(tiff, 0, 0, 0, 0)         // next IFD offset = 0

	payload := append([]byte("Exif\x00\x00"), tiff...)
	segLen := len(payload) + 2

	seg := make([]byte, 0, segLen+2)
	seg = append(seg, 0xFF, 0xE1)
	seg = append(seg, byte(segLen>>8), byte(segLen&0xFF))
	seg = append(seg, payload...)
	_ = tiffStart
	return seg
}

// TestLoadImageCorrectsOrientation verifies that LoadImage rotates pixel
// data to display orientation and reports that it did so — the inpainter
// operates directly on the returned pixels, so a wrong orientation would
// silently paint masks and run the eikonal solver over a sideways image.
func TestLoadImageCorrectsOrientation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rotated.jpg")
	encodeTestJPEGWithOrientation(t, path, 6) // 90 CW

	img, format, autoOriented, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage error: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected format jpeg, got %s", format)
	}
	if !autoOriented {
		t.Fatalf("expected autoOriented=true for orientation 6")
	}
	// Original image was 4 wide x 2 tall; a 90-degree rotation swaps dimensions.
	b := img.Bounds()
	if b.Dx() != 2 || b.Dy() != 4 {
		t.Fatalf("expected rotated bounds 2x4, got %dx%d", b.Dx(), b.Dy())
	}
}

// TestLoadImageNoOrientationTag verifies that an image with no EXIF
// orientation tag passes through with autoOriented=false and unmodified
// bounds.
func TestLoadImageNoOrientationTag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.jpg")

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	var body bytes.Buffer
	if err := jpeg.Encode(&body, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg encode failed: %v", err)
	}
	if err := os.WriteFile(path, body.Bytes(), 0o644); err != nil {
		t.Fatalf("write jpeg failed: %v", err)
	}

	loaded, format, autoOriented, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage error: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected format jpeg, got %s", format)
	}
	if autoOriented {
		t.Fatalf("expected autoOriented=false with no orientation tag")
	}
	b := loaded.Bounds()
	if b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("expected unmodified bounds 4x2, got %dx%d", b.Dx(), b.Dy())
	}
}
