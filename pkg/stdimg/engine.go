package stdimg

import (
	"fmt"
	"image"
	"strconv"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/Fepozopo/teleafmm/pkg/inpaint"
)

// ApplyCommandStdlib applies one command to an image.NRGBA and returns a
// new image. It implements the full set of operations this module
// exposes: resize, threshold (mask binarization), paintmask (seeded mask
// selection), inpaint (the Telea FMM reconstruction itself), visualize (T
// field debug view), and identify.
func ApplyCommandStdlib(img image.Image, commandName string, args []string) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	src := ToNRGBA(img)
	switch commandName {
	case "resize":
		if len(args) != 2 {
			return nil, fmt.Errorf("resize requires 2 args: width height")
		}
		w, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid width: %w", err)
		}
		h, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid height: %w", err)
		}
		return ResampleLanczos(src, w, h, 3.0), nil

	case "threshold":
		// threshold <value> [perChannel] binarizes src into a strict
		// black/white mask: a pixel's luminance (or each channel,
		// independently, when perChannel is set) at or above value becomes
		// white, the rest black. The result is an *image.NRGBA; converted
		// with toGray it is a valid input for MaskFromGray.
		if len(args) < 1 {
			return nil, fmt.Errorf("threshold requires at least 1 arg: value")
		}
		threshVal, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value: %w", err)
		}
		perChannel := false
		if len(args) >= 2 && args[1] != "" {
			b, err := strconv.ParseBool(args[1])
			if err != nil {
				return nil, fmt.Errorf("invalid perChannel flag: %w", err)
			}
			perChannel = b
		}
		return thresholdImage(src, threshVal, perChannel), nil

	case "paintmask":
		// paintmask <fuzz> <borderColor> <x> <y> [invert]
		if len(args) < 4 {
			return nil, fmt.Errorf("paintmask requires at least 4 args: fuzz borderColor x y [invert]")
		}
		fuzz, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid fuzz: %w", err)
		}
		var borderCol = zeroNRGBA
		if args[1] != "" {
			borderCol, err = ParseColor(args[1])
			if err != nil {
				return nil, fmt.Errorf("invalid border color: %w", err)
			}
		}
		x, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("invalid x: %w", err)
		}
		y, err := strconv.Atoi(args[3])
		if err != nil {
			return nil, fmt.Errorf("invalid y: %w", err)
		}
		invert := false
		if len(args) >= 5 && args[4] != "" {
			invert, err = strconv.ParseBool(args[4])
			if err != nil {
				return nil, fmt.Errorf("invalid invert flag: %w", err)
			}
		}
		mask := PaintMask(src, fuzz, borderCol, x, y, invert)
		return mask, nil

	case "inpaint":
		// inpaint <radius> <maskPath>: reconstructs every pixel the mask
		// PNG marks (luminance > 127) using Telea's Fast Marching Method,
		// and returns the reconstructed image.
		if len(args) != 2 {
			return nil, fmt.Errorf("inpaint requires 2 args: radius maskPath")
		}
		radius, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid radius: %w", err)
		}
		maskImg, err := decodeImageFile(args[1])
		if err != nil {
			return nil, fmt.Errorf("failed to load mask: %w", err)
		}
		grayMask := toGray(maskImg)
		view := NRGBAToView(src)
		maskView := MaskFromGray(grayMask)
		if err := inpaint.InpaintTelea(view, maskView, radius); err != nil {
			return nil, fmt.Errorf("inpaint failed: %w", err)
		}
		return ViewToNRGBA(view), nil

	case "visualize":
		// visualize <radius> <maskPath>: runs the same march as inpaint
		// but returns a heatmap of the T field the march converged to,
		// instead of the reconstructed image.
		if len(args) != 2 {
			return nil, fmt.Errorf("visualize requires 2 args: radius maskPath")
		}
		radius, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid radius: %w", err)
		}
		maskImg, err := decodeImageFile(args[1])
		if err != nil {
			return nil, fmt.Errorf("failed to load mask: %w", err)
		}
		grayMask := toGray(maskImg)
		view := NRGBAToView(src)
		maskView := MaskFromGray(grayMask)
		tField, err := inpaint.InpaintTeleaWithTField(view, maskView, radius)
		if err != nil {
			return nil, fmt.Errorf("visualize failed: %w", err)
		}
		return VisualizeTField(tField), nil

	case "identify":
		// identify never mutates the image; it exists so the command-dispatch
		// metadata (stdimg.Commands) lists it alongside the transforms. The
		// caller (pkg/cli's printIdentifyInfo) does the actual printing once
		// it has the image back, since format/path/orientation provenance
		// lives in the CLI's load state, not in this engine.
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported command in stdlib engine: %s", commandName)
	}
}
