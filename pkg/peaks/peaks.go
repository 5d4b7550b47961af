// ABOUTME: Peak series aggregation and shaping helpers
// ABOUTME: Max/min/absolute-max math with empty-series sentinel conventions
package peaks

import "math"

// Max returns the largest sample in the series.
// An empty series yields -Inf by convention.
func Max(series []float64) float64 {
	largest := math.Inf(-1)
	for _, v := range series {
		if v > largest {
			largest = v
		}
	}
	return largest
}

// Min returns the smallest sample in the series.
// An empty series yields +Inf by convention.
func Min(series []float64) float64 {
	smallest := math.Inf(1)
	for _, v := range series {
		if v < smallest {
			smallest = v
		}
	}
	return smallest
}

// AbsMax returns the largest absolute sample value, computed as
// max(-Min, Max) so paired min/max series need no unpacking.
func AbsMax(series []float64) float64 {
	return math.Max(-Min(series), Max(series))
}

// HasNegative reports whether the series contains any negative sample.
// A series without negatives carries single magnitudes; one with
// negatives carries interleaved max/min pairs.
func HasNegative(series []float64) bool {
	for _, v := range series {
		if v < 0 {
			return true
		}
	}
	return false
}

// MirrorPairs synthesizes an interleaved (+v, -v) pair per sample of a
// single-magnitude series, so styles that need paired min/max samples
// can render it.
func MirrorPairs(series []float64) []float64 {
	out := make([]float64, 2*len(series))
	for i, v := range series {
		out[2*i] = v
		out[2*i+1] = -v
	}
	return out
}

// Columns returns how many pixel columns a series naturally occupies:
// one per interleaved max/min pair, or one per sample when the series
// carries single magnitudes.
func Columns(series []float64) int {
	if HasNegative(series) {
		return len(series) / 2
	}
	return len(series)
}

// At reads the sample at index i, defaulting to 0 when the index is
// out of range. Rasterization reads one sample past a surface's owned
// slice to share a boundary vertex; the default keeps that read safe.
func At(series []float64, i int) float64 {
	if i < 0 || i >= len(series) {
		return 0
	}
	return series[i]
}
