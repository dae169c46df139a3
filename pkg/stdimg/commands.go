// Package stdimg: authoritative registry of stdlib engine commands.
//
// This file mirrors the commands implemented in ApplyCommandStdlib in
// pkg/stdimg/engine.go. Keep this list up-to-date when you add or
// modify commands so callers (CLI, docs, help text) can read a single
// source of truth.

package stdimg

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "bool", "string", "path", etc.
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

// Commands is the authoritative list of commands implemented by the stdlib engine.
// Keep this synchronized with ApplyCommandStdlib in pkg/stdimg/engine.go.
var Commands = []CommandSpec{
	{
		Name:        "resize",
		Args:        []ArgSpec{{"width", "int", true, "", "output width"}, {"height", "int", true, "", "output height"}},
		Usage:       "resize <width> <height>",
		Description: "Resize image using Lanczos resampling (a=3). Useful for inpainting a downscaled copy before upscaling back.",
	},
	{
		Name:        "threshold",
		Args:        []ArgSpec{{"value", "float", true, "", "threshold value (0..255)"}, {"perChannel", "bool", false, "false", "apply per-channel instead of by luminance"}},
		Usage:       "threshold <value> [perChannel]",
		Description: "Binarize an arbitrary grayscale mask into the strict >0.5 mask the inpainter requires.",
	},
	{
		Name:        "paintmask",
		Args:        []ArgSpec{{"fuzz", "float", true, "", "Lab delta-E tolerance (0..200)"}, {"borderColor", "string", false, "", "CSS color or hex; empty means match seed color instead"}, {"x", "int", true, "", "seed x"}, {"y", "int", true, "", "seed y"}, {"invert", "bool", false, "false", "invert the selected region"}},
		Usage:       "paintmask <fuzz> <borderColor> <x> <y> [invert]",
		Description: "Grow an inpainting mask from a seed pixel by perceptual (Lab) color similarity.",
	},
	{
		Name:        "inpaint",
		Args:        []ArgSpec{{"radius", "int", true, "", "Known-neighbor disk radius"}, {"maskPath", "path", true, "", "path to a mask image (luminance > 127 = masked)"}},
		Usage:       "inpaint <radius> <maskPath>",
		Description: "Reconstruct every masked pixel with Telea's Fast Marching Method.",
	},
	{
		Name:        "visualize",
		Args:        []ArgSpec{{"radius", "int", true, "", "Known-neighbor disk radius"}, {"maskPath", "path", true, "", "path to a mask image (luminance > 127 = masked)"}},
		Usage:       "visualize <radius> <maskPath>",
		Description: "Run the same march as inpaint but return a heatmap of the converged T field instead of the image.",
	},
	{
		Name:        "identify",
		Args:        []ArgSpec{},
		Usage:       "identify",
		Description: "Print image metadata; returns nil image.",
	},
}
