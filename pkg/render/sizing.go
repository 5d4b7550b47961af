// ABOUTME: Device-pixel-ratio-aware sizing math
// ABOUTME: Shared by surface tiling and rasterization geometry
package render

import "math"

// devicePx converts a logical pixel length to device pixels.
func devicePx(logical int, ratio float64) int {
	return int(math.Round(float64(logical) * ratio))
}

// logicalPx converts a device pixel length back to logical pixels.
func logicalPx(device int, ratio float64) int {
	if ratio == 0 {
		return device
	}
	return int(math.Round(float64(device) / ratio))
}

// overlapFor derives the seam overlap between adjacent surfaces, in
// device pixels. Two device pixels per ratio unit hides the seam at
// any zoom without a visible double-paint band.
func overlapFor(ratio float64) int {
	return 2 * int(math.Round(ratio))
}

// halfPixelFor derives the half-pixel offset applied to interior line
// vertices as anti-aliasing compensation.
func halfPixelFor(ratio float64) float64 {
	return 0.5 / ratio
}

// requiredSurfaces returns how many surfaces a total width needs given
// the per-surface width cap and seam overlap.
func requiredSurfaces(totalWidth, maxWidth, overlap int) int {
	if totalWidth <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalWidth) / float64(maxWidth+overlap)))
}

// clampInt bounds v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
