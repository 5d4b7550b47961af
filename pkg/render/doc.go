// ABOUTME: Package documentation for the tiled waveform renderer
// ABOUTME: Describes the surface tiling and rasterization engine
// Package render rasterizes audio waveforms across tiled 2D drawing
// surfaces.
//
// A single drawing surface cannot grow arbitrarily wide before hitting
// rendering artifacts and performance cliffs, so a SurfaceSet
// partitions the waveform into a bounded number of fixed-maximum-width
// surfaces, each owning a fraction of the peak series. Adjacent
// surfaces overlap by a few pixels so no seam is visible.
//
// The package provides:
//   - Bar-style and continuous-line rasterization with multi-channel
//     split/overlay/normalization modes
//   - A progress overlay revealed by playback position, decoupled from
//     peak rasterization
//   - Staggered redraw scheduling that defers off-screen surfaces
//   - A zero-recompute pseudo-zoom that stretches cached snapshots
//     while real peak data is recomputed elsewhere
//   - Image export as a single composite, per-surface tiles, or a
//     deferred blob collection
//
// Example:
//
//	set, err := render.New(render.Params{
//	    WaveColor:     render.FlatColor("#4353ff"),
//	    ProgressColor: render.FlatColor("#1f2680"),
//	    Height:        128,
//	    Normalize:     true,
//	})
//	err = set.Resize(1024, 128)
//	err = set.RenderLine(render.SingleChannel(series), 0, 1024)
//	set.UpdateProgress(512)
//	res, err := set.GetImage(render.FormatPNG, 0, render.ImageSingle)
package render
