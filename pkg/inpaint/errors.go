package inpaint

import "errors"

// InpaintTelea's error taxonomy is flat and raised only during input
// validation, before any work begins — grounded on the
// sentinel-error style katalvlaran-lvlath uses for its own graph
// algorithms (e.g. ErrVertexNotFound), rather than a custom error type.
var (
	// ErrDimensionMismatch means mask (H, W) does not match image (H, W).
	ErrDimensionMismatch = errors.New("inpaint: mask dimensions do not match image dimensions")
	// ErrInvalidRadius means radius < 1.
	ErrInvalidRadius = errors.New("inpaint: radius must be at least 1")
	// ErrEmptyImage means H, W, or C is zero.
	ErrEmptyImage = errors.New("inpaint: image height, width, and channel count must all be positive")
)
