// ABOUTME: Rendering configuration bundle with zero-value defaulting
// ABOUTME: Mirrors the options an embedding player hands the renderer
package render

import "github.com/gogpu/gg"

// SurfaceFactory creates a drawing context of the given device-pixel
// dimensions. The default factory is gg.NewContext; embedders may
// inject their own (e.g. a GPU-backed context).
type SurfaceFactory func(width, height int) *gg.Context

// ChannelColors overrides the wave and progress styles for one channel
// in split-channel mode.
type ChannelColors struct {
	WaveColor     FillStyle
	ProgressColor FillStyle
}

// SplitChannelOptions tunes multi-channel rendering.
type SplitChannelOptions struct {
	// Overlay draws every channel in the same vertical band instead of
	// stacking one band per channel.
	Overlay bool

	// RelativeNormalization normalizes all channels against the
	// loudest channel's absolute maximum instead of each channel's own.
	RelativeNormalization bool

	// FilterChannels lists channel indices excluded from rasterization.
	FilterChannels []int

	// ChannelColors maps a channel index to per-channel styles.
	ChannelColors map[int]ChannelColors
}

// Params configures a SurfaceSet. Zero values are defaulted by New.
type Params struct {
	// WaveColor paints the waveform. Default FlatColor("#999").
	WaveColor FillStyle

	// ProgressColor paints the progress overlay. When nil, no progress
	// surfaces are created and progress operations are no-ops.
	ProgressColor FillStyle

	// BarWidth is the bar width in logical pixels. Default 1.
	BarWidth float64

	// BarGap is the gap between bars in logical pixels. When nil the
	// gap derives as max(PixelRatio, floor(barWidth/2)) device pixels.
	BarGap *float64

	// BarMinHeight is the minimum bar height floor in device pixels.
	BarMinHeight float64

	// BarRadius rounds bar corners, in device pixels.
	BarRadius float64

	// BarHeight scales amplitude when Normalize is off: the amplitude
	// ceiling is 1/BarHeight. Default 1.
	BarHeight float64

	// Height is the per-channel band height in logical pixels.
	// Default 128.
	Height int

	// PixelRatio is the device scale factor. Default 1.
	PixelRatio float64

	// MaxSurfaceWidth caps one surface's device-pixel width before the
	// waveform tiles across several surfaces. Default 4000.
	MaxSurfaceWidth int

	// ViewportWidth is the visible window width in device pixels, used
	// to prioritize on-screen surfaces during staggered redraws and to
	// window stretch restores. 0 means the whole waveform is visible.
	ViewportWidth int

	// Normalize scales amplitudes by the series' true absolute maximum
	// instead of the BarHeight ceiling.
	Normalize bool

	// FillParent stretches the waveform horizontally to the configured
	// width when the sample count differs from the pixel width.
	// When off, callers size the set to the peak count instead.
	FillParent bool

	// Vertical renders the waveform top-to-bottom instead of
	// left-to-right.
	Vertical bool

	// SplitChannels renders each channel separately; see
	// SplitChannelOptions.
	SplitChannels       bool
	SplitChannelOptions SplitChannelOptions

	// Factory creates drawing contexts. Default gg.NewContext.
	Factory SurfaceFactory
}

// withDefaults fills zero values with the documented defaults.
func (p Params) withDefaults() Params {
	if p.WaveColor == nil {
		p.WaveColor = FlatColor("#999")
	}
	if p.BarWidth <= 0 {
		p.BarWidth = 1
	}
	if p.BarHeight <= 0 {
		p.BarHeight = 1
	}
	if p.Height <= 0 {
		p.Height = 128
	}
	if p.PixelRatio <= 0 {
		p.PixelRatio = 1
	}
	if p.MaxSurfaceWidth <= 0 {
		p.MaxSurfaceWidth = 4000
	}
	if p.Factory == nil {
		p.Factory = func(w, h int) *gg.Context { return gg.NewContext(w, h) }
	}
	return p
}

// filtered reports whether a channel index is excluded from rasterization.
func (o SplitChannelOptions) filtered(channel int) bool {
	for _, c := range o.FilterChannels {
		if c == channel {
			return true
		}
	}
	return false
}
