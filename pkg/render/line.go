// ABOUTME: Continuous-line rasterization with staggered surface redraws
// ABOUTME: On-screen surfaces draw immediately, off-screen ones defer
package render

import (
	"fmt"
	"time"

	"github.com/wavetile/wavetile-go/pkg/peaks"
)

// staggerDelay is the deferral unit per viewport-width of distance
// between a surface and the visible window.
const staggerDelay = 50 * time.Millisecond

// RenderLine rasterizes the peak input as a continuous filled polyline.
// Surfaces intersecting the viewport redraw immediately; surfaces
// further out are deferred by staggerDelay per viewport-width of
// distance, each deferral superseding any still-pending one for the
// same surface and channel. A negative startPx draws only the flat
// midline placeholder.
func (s *SurfaceSet) RenderLine(input Peaks, startPx, endPx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.beginRenderLocked()

	return s.prepareDraw(input, func(g renderGeometry, series []float64, ch int) error {
		if startPx >= 0 {
			drawSeries := series
			if !g.hasMinVals {
				drawSeries = peaks.MirrorPairs(series)
			}

			gen := s.gen
			for _, surf := range s.surfaces {
				surf := surf
				priority := s.staggerPriority(surf)
				if priority == 0 {
					if err := s.drawSurfaceLine(surf, drawSeries, g, ch); err != nil {
						return err
					}
					continue
				}

				// Keyed per surface and channel: split-channel passes
				// schedule one entry per band and must not supersede
				// each other within one render.
				geom := g
				key := fmt.Sprintf("%s#%d", surf.id, ch)
				s.scheduler.schedule(key, time.Duration(priority)*staggerDelay, func() {
					s.mu.Lock()
					defer s.mu.Unlock()
					if s.closed || s.gen != gen {
						return
					}
					if err := s.drawSurfaceLine(surf, drawSeries, geom, ch); err != nil {
						Logger().Warn("deferred line redraw failed", "set", s.id, "err", err)
					}
				})
			}
		}

		return s.drawMidline(g, ch)
	})
}

// drawSurfaceLine rasterizes one surface's owned slice and finishes the
// draw (snapshot capture, backup completion signal). Callers hold the
// set mutex.
func (s *SurfaceSet) drawSurfaceLine(surf *Surface, series []float64, g renderGeometry, ch int) error {
	if err := s.applyChannelStyles(surf, ch); err != nil {
		return err
	}
	if err := surf.drawPolyline(series, g.absMax, g.halfH, g.offsetY); err != nil {
		return err
	}
	s.finishSurfaceDraw(surf)
	return nil
}
