// ABOUTME: One bounded drawing surface pair (wave + optional progress)
// ABOUTME: Owns rasterization primitives and snapshot caching
package render

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/google/uuid"

	"github.com/wavetile/wavetile-go/pkg/peaks"
)

// axisSwap reflects across the line y=-x so horizontal drawing
// primitives render as a vertical waveform.
var axisSwap = gg.Matrix{A: 0, B: 1, C: 0, D: 1, E: 0, F: 0}

// Surface wraps one wave drawing context and an optional progress
// overlay context. Coordinates passed to its drawing primitives are in
// waveform space (x along the signal, y across amplitude), in device
// pixels local to this surface; the orientation transform maps them to
// backing pixels.
type Surface struct {
	id       string
	wave     *gg.Context
	progress *gg.Context

	waveBrush     gg.Brush
	progressBrush gg.Brush

	// Tiling assignment.
	left       int     // device px offset of this surface's left edge
	start, end float64 // owned fraction of the total waveform

	width, height int // waveform-space device px

	halfPixel float64
	vertical  bool

	drawn bool

	// Cached encoded pixel content, nil until captured.
	waveSnap     []byte
	progressSnap []byte
}

// newSurface creates a surface pair via the factory. The progress
// context is only created when withProgress is set.
func newSurface(factory SurfaceFactory, width, height int, withProgress, vertical bool, halfPixel float64) (*Surface, error) {
	bw, bh := backingDims(width, height, vertical)
	s := &Surface{
		id:        uuid.New().String(),
		width:     width,
		height:    height,
		halfPixel: halfPixel,
		vertical:  vertical,
	}
	var progress *gg.Context
	if withProgress {
		progress = factory(bw, bh)
	}
	if err := s.bind(factory(bw, bh), progress); err != nil {
		return nil, err
	}
	return s, nil
}

// bind attaches the backing contexts. The wave context is required.
func (s *Surface) bind(wave, progress *gg.Context) error {
	if wave == nil {
		return ErrMissingSurface
	}
	s.wave = wave
	s.progress = progress
	s.applyOrientation()
	return nil
}

// backingDims returns context dimensions; vertical surfaces swap axes.
func backingDims(width, height int, vertical bool) (int, int) {
	if vertical {
		return height, width
	}
	return width, height
}

// applyOrientation installs the axis-swap transform on both contexts
// when vertical, identity otherwise.
func (s *Surface) applyOrientation() {
	m := gg.Identity()
	if s.vertical {
		m = axisSwap
	}
	s.wave.SetTransform(m)
	if s.progress != nil {
		s.progress.SetTransform(m)
	}
}

// updateDimensions assigns this surface's tile: left offset, owned
// fraction of the waveform, and pixel dimensions. Backing contexts are
// resized in place when the size changed.
func (s *Surface) updateDimensions(left int, start, end float64, width, height int) error {
	s.left = left
	s.start = start
	s.end = end
	s.width = width
	s.height = height

	bw, bh := backingDims(width, height, s.vertical)
	if err := s.wave.Resize(bw, bh); err != nil {
		return err
	}
	if s.progress != nil {
		if err := s.progress.Resize(bw, bh); err != nil {
			return err
		}
	}
	return nil
}

// clear resets both backing stores to fully transparent and drops the
// cached snapshots. Clearing bypasses the path pipeline entirely, so
// it holds regardless of the active transform.
func (s *Surface) clear() {
	s.wave.Clear()
	if s.progress != nil {
		s.progress.Clear()
	}
	s.drawn = false
	s.waveSnap = nil
	s.progressSnap = nil
}

// setFillStyles builds the wave and progress brushes. Gradients span
// the surface's full band height.
func (s *Surface) setFillStyles(wave, progress FillStyle) error {
	wb, err := brushFor(wave, float64(s.height))
	if err != nil {
		return err
	}
	pb, err := brushFor(progress, float64(s.height))
	if err != nil {
		return err
	}
	s.waveBrush = wb
	s.progressBrush = pb
	return nil
}

// contexts yields the paintable (context, brush) pairs: the wave
// surface always, the progress overlay when bound and styled.
func (s *Surface) contexts() []paintTarget {
	targets := []paintTarget{{s.wave, s.waveBrush}}
	if s.progress != nil && s.progressBrush != nil {
		targets = append(targets, paintTarget{s.progress, s.progressBrush})
	}
	return targets
}

type paintTarget struct {
	ctx   *gg.Context
	brush gg.Brush
}

// fillRect draws a filled (optionally rounded) rectangle on the wave
// surface and the progress overlay. A zero height is a no-op; a
// negative height is treated as magnitude with the origin shifted so
// the rectangle occupies the correct vertical span.
func (s *Surface) fillRect(x, y, w, h, radius float64) error {
	for _, t := range s.contexts() {
		if t.brush == nil {
			continue
		}
		t.ctx.SetFillBrush(t.brush)
		if err := fillRectPath(t.ctx, x, y, w, h, radius); err != nil {
			return err
		}
	}
	return nil
}

// fillRectPath builds and fills one rectangle path.
func fillRectPath(ctx *gg.Context, x, y, w, h, radius float64) error {
	if h == 0 {
		return nil
	}
	if h < 0 {
		h = -h
		y -= h
	}
	if radius <= 0 {
		ctx.DrawRectangle(x, y, w, h)
		return ctx.Fill()
	}
	// Rounded corners via quadratic curves.
	ctx.MoveTo(x, y+radius)
	ctx.LineTo(x, y+h-radius)
	ctx.QuadraticTo(x, y+h, x+radius, y+h)
	ctx.LineTo(x+w-radius, y+h)
	ctx.QuadraticTo(x+w, y+h, x+w, y+h-radius)
	ctx.LineTo(x+w, y+radius)
	ctx.QuadraticTo(x+w, y, x+w-radius, y)
	ctx.LineTo(x+radius, y)
	ctx.QuadraticTo(x, y, x, y+radius)
	ctx.ClosePath()
	return ctx.Fill()
}

// drawPolyline rasterizes this surface's owned slice of an interleaved
// max/min peak series as one closed, filled path. The top edge walks
// owned indices left to right, the bottom edge walks back right to
// left; adjacent surfaces share a boundary sample so the seam has no
// gap. Interior vertices carry the half-pixel offset; the opening and
// closing vertices do not.
func (s *Surface) drawPolyline(series []float64, absMax, halfH, offsetY float64) error {
	length := len(series) / 2
	first := int(math.Round(float64(length) * s.start))
	last := int(math.Round(float64(length)*s.end)) + 1
	if last-first <= 1 {
		return nil
	}

	scale := float64(s.width) / float64(last-first-1)
	halfOffset := halfH + offsetY
	absMaxHalf := absMax / halfH
	if absMaxHalf <= 0 || math.IsNaN(absMaxHalf) {
		// Silent audio under Normalize; every vertex sits on the midline.
		absMaxHalf = 1
	}

	for _, t := range s.contexts() {
		if t.brush == nil {
			continue
		}
		ctx := t.ctx
		ctx.SetFillBrush(t.brush)

		ctx.MoveTo(0, halfOffset)
		ctx.LineTo(0, halfOffset-math.Round(peaks.At(series, 2*first)/absMaxHalf))
		for i := first; i < last; i++ {
			h := math.Round(peaks.At(series, 2*i) / absMaxHalf)
			ctx.LineTo(float64(i-first)*scale+s.halfPixel, halfOffset-h)
		}
		for i := last - 1; i >= first; i-- {
			h := math.Round(peaks.At(series, 2*i+1) / absMaxHalf)
			ctx.LineTo(float64(i-first)*scale+s.halfPixel, halfOffset-h)
		}
		ctx.LineTo(0, halfOffset-math.Round(peaks.At(series, 2*first+1)/absMaxHalf))
		ctx.ClosePath()
		if err := ctx.Fill(); err != nil {
			return err
		}
	}
	return nil
}

// Left returns the surface's device-pixel left offset.
func (s *Surface) Left() int { return s.left }

// Width returns the surface's device-pixel width.
func (s *Surface) Width() int { return s.width }

// Height returns the surface's device-pixel height.
func (s *Surface) Height() int { return s.height }

// OwnedRange returns the fraction of the total waveform this surface
// rasterizes.
func (s *Surface) OwnedRange() (start, end float64) { return s.start, s.end }

// Drawn reports whether the surface holds rasterized peak content.
func (s *Surface) Drawn() bool { return s.drawn }

// destroy releases the backing contexts. Safe to call repeatedly.
func (s *Surface) destroy() {
	if s.wave != nil {
		_ = s.wave.Close()
		s.wave = nil
	}
	if s.progress != nil {
		_ = s.progress.Close()
		s.progress = nil
	}
	s.waveSnap = nil
	s.progressSnap = nil
	s.drawn = false
}
