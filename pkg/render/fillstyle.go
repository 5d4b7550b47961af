// ABOUTME: Fill style tagged union for wave and progress painting
// ABOUTME: Flat hex color or ordered gradient stop list
package render

import (
	"fmt"

	"github.com/gogpu/gg"
)

// FillStyle is the color of a painted region: either a FlatColor or a
// GradientStops list.
type FillStyle interface {
	fillStyle()
}

// FlatColor is a single solid color in hex notation, e.g. "#999" or
// "#4353ff".
type FlatColor string

func (FlatColor) fillStyle() {}

// GradientStops is an ordered list of hex colors. The gradient spans
// the painted surface's full height with stop i placed at fraction
// i/len(stops).
type GradientStops []string

func (GradientStops) fillStyle() {}

// brushFor builds the drawing brush for a style. heightPx is the full
// device-pixel height a gradient spans. A nil style yields a nil brush,
// which callers treat as "do not paint".
func brushFor(style FillStyle, heightPx float64) (gg.Brush, error) {
	switch v := style.(type) {
	case nil:
		return nil, nil
	case FlatColor:
		return gg.Solid(gg.Hex(string(v))), nil
	case GradientStops:
		grad := gg.NewLinearGradientBrush(0, 0, 0, heightPx)
		n := len(v)
		for i, stop := range v {
			grad.AddColorStop(float64(i)/float64(n), gg.Hex(stop))
		}
		return grad, nil
	default:
		return nil, fmt.Errorf("render: unknown fill style %T", style)
	}
}
