// ABOUTME: Package documentation for peak series preparation
// ABOUTME: Describes the peak data model consumed by the renderer
// Package peaks prepares amplitude peak series for waveform rendering.
//
// A peak series is an ordered []float64 of signed samples, one
// min/max pair (or single magnitude) per pixel-column bucket.
// Paired series interleave values: series[2i] is the bucket maximum,
// series[2i+1] the bucket minimum. Multi-channel audio uses one
// series per channel.
//
// The package provides:
//   - Aggregation helpers (Max, Min, AbsMax, HasNegative) with the
//     renderer's empty-series sentinel conventions
//   - Mirror-pair synthesis for single-magnitude series
//   - Bucketing of raw PCM into per-column peak pairs (FromPCM,
//     FromBuffer, FromIntBuffer)
//   - JSON loading of ready-made peak arrays
//
// Example:
//
//	series := peaks.FromPCM(samples, 1024)
//	set, err := render.New(render.Params{Normalize: true})
//	err = set.RenderLine(render.SingleChannel(series), 0, set.Width())
package peaks
