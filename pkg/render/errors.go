// ABOUTME: Sentinel errors for the rendering pipeline
// ABOUTME: Callers test with errors.Is
package render

import "errors"

var (
	// ErrMissingSurface is returned when an operation requires a wave
	// drawing surface that was never bound.
	ErrMissingSurface = errors.New("render: missing wave surface")

	// ErrUnsupportedFormat is returned by image export when the
	// requested encode format or mode is unknown.
	ErrUnsupportedFormat = errors.New("render: unsupported image format")

	// ErrClosed is returned by operations on a closed SurfaceSet.
	ErrClosed = errors.New("render: surface set closed")
)
