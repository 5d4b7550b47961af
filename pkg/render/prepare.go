// ABOUTME: Shared draw preparation for bar and line rasterization
// ABOUTME: Channel filtering, normalization, and per-channel geometry
package render

import (
	"math"

	"github.com/wavetile/wavetile-go/pkg/peaks"
)

// renderGeometry is the transient geometry of one channel draw.
// Never persisted.
type renderGeometry struct {
	absMax     float64
	hasMinVals bool
	height     float64 // one channel band, device px
	halfH      float64
	offsetY    float64
}

// channelDrawFunc rasterizes one prepared channel.
type channelDrawFunc func(geom renderGeometry, series []float64, channelIndex int) error

// prepareDraw funnels both rasterization styles through one pass: it
// resolves the visible channel list, resizes the set for stacked
// split-channel bands, runs the cross-channel normalization pre-pass
// when requested, and invokes fn once per visible channel. Channels
// named in FilterChannels never reach rasterization.
func (s *SurfaceSet) prepareDraw(input Peaks, fn channelDrawFunc) error {
	channels := input
	if len(channels) == 0 {
		channels = Peaks{nil}
	}
	opts := s.params.SplitChannelOptions
	bandHeight := devicePx(s.params.Height, s.params.PixelRatio)

	if s.params.SplitChannels && len(channels) > 1 {
		visible := make([]int, 0, len(channels))
		for i := range channels {
			if !opts.filtered(i) {
				visible = append(visible, i)
			}
		}
		bands := 1
		if !opts.Overlay {
			bands = maxInt(len(visible), 1)
			if err := s.resizeLocked(s.totalWidth, bands*bandHeight); err != nil {
				return err
			}
		}

		// Relative normalization scales every channel against the
		// loudest channel's own absolute maximum.
		overall := math.NaN()
		if opts.RelativeNormalization {
			overall = math.Inf(-1)
			for _, ch := range channels {
				overall = math.Max(overall, peaks.AbsMax(ch))
			}
		}

		for drawIndex, ci := range visible {
			if err := s.drawChannel(channels[ci], ci, drawIndex, bands, overall, fn); err != nil {
				return err
			}
		}
		return nil
	}

	if opts.filtered(0) {
		return nil
	}
	return s.drawChannel(channels[0], 0, 0, 1, math.NaN(), fn)
}

// drawChannel computes one channel's geometry and hands it to fn.
// Band geometry derives from the set's current pixel height so custom
// resize heights keep the midline centered. overallMax is NaN unless a
// relative-normalization pre-pass ran.
func (s *SurfaceSet) drawChannel(series []float64, channelIndex, drawIndex, bands int, overallMax float64, fn channelDrawFunc) error {
	absMax := 1 / s.params.BarHeight
	if s.params.Normalize {
		if math.IsNaN(overallMax) {
			absMax = peaks.AbsMax(series)
		} else {
			absMax = overallMax
		}
	}

	height := float64(s.height) / float64(bands)
	offsetY := height * float64(drawIndex)
	if s.params.SplitChannelOptions.Overlay {
		offsetY = 0
	}

	return fn(renderGeometry{
		absMax:     absMax,
		hasMinVals: peaks.HasNegative(series),
		height:     height,
		halfH:      height / 2,
		offsetY:    offsetY,
	}, series, channelIndex)
}

// drawMidline paints the flat placeholder line across the channel's
// vertical center.
func (s *SurfaceSet) drawMidline(g renderGeometry, channelIndex int) error {
	return s.fillRectLocked(0, g.halfH+g.offsetY-s.halfPixel, float64(s.totalWidth),
		s.halfPixel*2, s.params.BarRadius, channelIndex)
}
