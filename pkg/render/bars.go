// ABOUTME: Discretized bar-style rasterization
// ABOUTME: Steps the pixel range and routes bars across surface seams
package render

import (
	"math"

	"github.com/wavetile/wavetile-go/pkg/peaks"
)

// RenderBars rasterizes the peak input as vertical bars over the
// device-pixel range [startPx, endPx). A negative startPx draws only
// the flat midline placeholder.
func (s *SurfaceSet) RenderBars(input Peaks, startPx, endPx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.beginRenderLocked()

	err := s.prepareDraw(input, func(g renderGeometry, series []float64, ch int) error {
		if startPx < 0 {
			return s.drawMidline(g, ch)
		}
		return s.drawBarsChannel(g, series, ch, startPx, endPx)
	})
	if err != nil {
		return err
	}

	for _, surf := range s.surfaces {
		s.finishSurfaceDraw(surf)
	}
	return nil
}

// drawBarsChannel steps [startPx, endPx) by barWidth+gap, scans each
// step's peak sub-range for the largest absolute magnitude, and fills
// one bar centered on the channel midline.
func (s *SurfaceSet) drawBarsChannel(g renderGeometry, series []float64, ch, startPx, endPx int) error {
	peakIndexScale := 1
	if g.hasMinVals {
		peakIndexScale = 2
	}
	length := len(series) / peakIndexScale

	bar := s.params.BarWidth * s.params.PixelRatio
	var gap float64
	if s.params.BarGap == nil {
		gap = math.Max(s.params.PixelRatio, math.Floor(bar/2))
	} else {
		gap = *s.params.BarGap * s.params.PixelRatio
	}
	step := bar + gap
	if step <= 0 {
		step = 1
	}

	scale := float64(length) / float64(s.totalWidth)
	last := float64(clampInt(endPx, 0, s.totalWidth))

	for x := float64(startPx); x < last; x += step {
		// Largest absolute magnitude in this step's peak sub-range.
		peak := 0.0
		idx := int(math.Floor(x*scale)) * peakIndexScale
		idxEnd := int(math.Floor((x+step)*scale)) * peakIndexScale
		for {
			if v := math.Abs(peaks.At(series, idx)); v > peak {
				peak = v
			}
			idx += peakIndexScale
			if idx >= idxEnd {
				break
			}
		}

		// A non-positive absMax (silent audio under Normalize) would
		// make the division NaN and skip the floor below.
		h := 0.0
		if g.absMax > 0 {
			h = math.Round(peak / g.absMax * g.halfH)
		}
		if h == 0 && s.params.BarMinHeight > 0 {
			h = s.params.BarMinHeight
		}

		err := s.fillRectLocked(x+s.halfPixel, g.halfH-h+g.offsetY,
			bar+s.halfPixel, h*2, s.params.BarRadius, ch)
		if err != nil {
			return err
		}
	}
	return nil
}
