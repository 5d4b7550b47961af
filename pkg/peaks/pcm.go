// ABOUTME: PCM bucketing into per-pixel-column peak pairs
// ABOUTME: Accepts raw float slices and go-audio buffers
package peaks

import (
	"fmt"

	"github.com/go-audio/audio"
)

// FromPCM buckets raw PCM samples into an interleaved max/min peak
// series with one pair per bucket. Buckets that receive no samples
// produce a (0, 0) pair.
func FromPCM(samples []float64, buckets int) []float64 {
	if buckets <= 0 {
		return nil
	}
	out := make([]float64, 2*buckets)
	n := len(samples)
	for b := 0; b < buckets; b++ {
		start := b * n / buckets
		end := (b + 1) * n / buckets
		if start >= end {
			continue
		}
		maxV := samples[start]
		minV := samples[start]
		for _, v := range samples[start+1 : end] {
			if v > maxV {
				maxV = v
			}
			if v < minV {
				minV = v
			}
		}
		out[2*b] = maxV
		out[2*b+1] = minV
	}
	return out
}

// FromPCMChannels buckets each channel independently.
func FromPCMChannels(channels [][]float64, buckets int) [][]float64 {
	out := make([][]float64, len(channels))
	for i, ch := range channels {
		out[i] = FromPCM(ch, buckets)
	}
	return out
}

// FromBuffer buckets an interleaved float buffer into one peak series
// per channel. Samples are expected in the -1..1 range.
func FromBuffer(buf *audio.FloatBuffer, buckets int) ([][]float64, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("peaks: nil buffer or format")
	}
	channels := deinterleave(buf.Data, buf.Format.NumChannels)
	return FromPCMChannels(channels, buckets), nil
}

// FromIntBuffer buckets an interleaved integer buffer, normalizing
// samples by the source bit depth before bucketing.
func FromIntBuffer(buf *audio.IntBuffer, buckets int) ([][]float64, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("peaks: nil buffer or format")
	}
	depth := buf.SourceBitDepth
	if depth <= 0 {
		depth = 16
	}
	scale := float64(int64(1) << (depth - 1))
	data := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = float64(v) / scale
	}
	channels := deinterleave(data, buf.Format.NumChannels)
	return FromPCMChannels(channels, buckets), nil
}

// deinterleave splits frame-interleaved samples into per-channel slices.
func deinterleave(data []float64, numChannels int) [][]float64 {
	if numChannels <= 1 {
		return [][]float64{data}
	}
	frames := len(data) / numChannels
	out := make([][]float64, numChannels)
	for c := range out {
		out[c] = make([]float64, frames)
	}
	for f := 0; f < frames; f++ {
		for c := 0; c < numChannels; c++ {
			out[c][f] = data[f*numChannels+c]
		}
	}
	return out
}
