// ABOUTME: Zero-recompute pseudo-zoom via cached snapshot stretching
// ABOUTME: Maps a backup captured under one tiling onto another
package render

import (
	"math"

	"github.com/gogpu/gg"
)

// backupLayout describes the tiling a zoom-fallback baseline was
// captured under.
type backupLayout struct {
	wave     []*gg.ImageBuf
	progress []*gg.ImageBuf
	lefts    []int
	widths   []int
	total    int
}

// StretchToWidth sets the logical total width without rasterizing new
// peak geometry, redrawing every surface from the cached backup
// snapshots stretched to the new scale, clipped to a viewport window
// around the progress position. It never blocks on recomputation; with
// no backup captured yet the surfaces simply stay blank. The progress
// overlay width is updated and the view recentered on the new progress
// position.
func (s *SurfaceSet) StretchToWidth(desiredWidthPx int, progressFraction float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	layout := backupLayout{
		wave:     s.backupWave,
		progress: s.backupProgress,
		lefts:    s.backupLefts,
		widths:   s.backupWidths,
		total:    s.backupTotal,
	}

	if err := s.resizeLocked(desiredWidthPx, s.height); err != nil {
		return err
	}
	s.beginRenderLocked()

	progressPx := int(math.Round(progressFraction * float64(desiredWidthPx)))
	vw := s.viewportWidthLocked()
	viewStart := maxInt(progressPx-vw, 0)
	viewEnd := progressPx + vw

	if len(layout.wave) > 0 && layout.total > 0 {
		for _, surf := range s.surfaces {
			surf.stretchFrom(layout, desiredWidthPx, viewStart, viewEnd)
		}
	}

	if s.params.ProgressColor != nil {
		s.progressPx = clampInt(progressPx, 0, desiredWidthPx)
	}
	s.viewOffset = clampInt(progressPx-vw/2, 0, maxInt(desiredWidthPx-vw, 0))

	Logger().Debug("stretched to width",
		"set", s.id, "width", desiredWidthPx, "progress", progressPx, "backup", len(layout.wave) > 0)
	return nil
}

// stretchFrom redraws this surface from backup tiles captured under a
// possibly different tiling, stretched to the new total width. Tiles
// outside this surface's pixel range or the viewport window are
// skipped.
func (s *Surface) stretchFrom(layout backupLayout, totalWidth, viewStart, viewEnd int) {
	scale := float64(totalWidth) / float64(layout.total)

	for i, img := range layout.wave {
		if img == nil {
			continue
		}
		dstLeft := float64(layout.lefts[i])*scale - float64(s.left)
		dstWidth := float64(layout.widths[i]) * scale

		if dstLeft+dstWidth < 0 || dstLeft > float64(s.width) {
			continue
		}
		absLeft := dstLeft + float64(s.left)
		if absLeft+dstWidth < float64(viewStart) || absLeft > float64(viewEnd) {
			continue
		}

		opts := gg.DrawImageOptions{
			X:             dstLeft,
			Y:             0,
			DstWidth:      dstWidth,
			DstHeight:     float64(s.height),
			Interpolation: gg.InterpBilinear,
		}
		s.wave.DrawImageEx(img, opts)
		if s.progress != nil && i < len(layout.progress) && layout.progress[i] != nil {
			s.progress.DrawImageEx(layout.progress[i], opts)
		}
	}
}
