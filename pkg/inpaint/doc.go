// Package inpaint implements Telea's Fast Marching Method image inpainting:
// a priority-queue-ordered flood from the boundary of a masked region that
// assigns an approximate arrival time to every masked pixel and fills each
// one, in that order, from a weighted combination of its already-known
// neighbors. See Telea (2004), "An Image Inpainting Technique Based on the
// Fast Marching Method".
//
// The driver (InpaintTelea, InpaintTeleaWithTField) is the package's only
// intended entry point. The array view, flag field and T field types are
// exported mainly so pkg/stdimg can convert images into and out of the
// views the driver operates on and read back the T field; the narrow-band
// heap, eikonal solver and interpolator are unexported and composed
// internally in driver.go.
package inpaint
