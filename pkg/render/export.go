// ABOUTME: Image export: per-surface tiles, single composite, deferred blobs
// ABOUTME: Applies the progress reveal at composition time
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
)

// ImageMode selects the shape of a GetImage result.
type ImageMode string

const (
	// ImageSingle composites all surfaces into one encoded image.
	ImageSingle ImageMode = "single"

	// ImageTiles returns one encoded image per surface, left to right.
	ImageTiles ImageMode = "tiles"

	// ImageDeferred delivers the per-surface encodes on a channel.
	ImageDeferred ImageMode = "deferred"
)

// ImageResult holds the export for the requested mode; exactly one
// field is populated.
type ImageResult struct {
	Single   *EncodedImage
	Tiles    []EncodedImage
	Deferred <-chan []EncodedImage
}

// GetImage exports the current pixel content, with the progress
// overlay revealed up to the current progress position. Unknown
// formats or modes yield ErrUnsupportedFormat.
func (s *SurfaceSet) GetImage(format string, quality int, mode ImageMode) (*ImageResult, error) {
	if format != FormatPNG && format != FormatJPEG {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	switch mode {
	case ImageSingle:
		img := s.compositeLocked()
		data, err := encodeImage(img, format, quality)
		if err != nil {
			return nil, err
		}
		return &ImageResult{Single: &EncodedImage{Format: format, Data: data}}, nil

	case ImageTiles:
		tiles, err := s.encodeTilesLocked(format, quality)
		if err != nil {
			return nil, err
		}
		return &ImageResult{Tiles: tiles}, nil

	case ImageDeferred:
		tiles, err := s.encodeTilesLocked(format, quality)
		if err != nil {
			return nil, err
		}
		out := make(chan []EncodedImage, 1)
		go func() {
			out <- tiles
			close(out)
		}()
		return &ImageResult{Deferred: out}, nil

	default:
		return nil, fmt.Errorf("%w: mode %q", ErrUnsupportedFormat, mode)
	}
}

// TileImages returns one composited image per surface, left to right,
// with the progress reveal applied.
func (s *SurfaceSet) TileImages() []image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]image.Image, len(s.surfaces))
	for i, surf := range s.surfaces {
		out[i] = surf.composite(s.progressPx)
	}
	return out
}

// Composite returns the whole waveform as one image with the progress
// reveal applied. Vertical sets stack tiles top to bottom.
func (s *SurfaceSet) Composite() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compositeLocked()
}

func (s *SurfaceSet) compositeLocked() image.Image {
	w, h := s.totalWidth, s.height
	if s.params.Vertical {
		w, h = h, w
	}
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, surf := range s.surfaces {
		tile := surf.composite(s.progressPx)
		offset := image.Pt(surf.left, 0)
		if s.params.Vertical {
			offset = image.Pt(0, surf.left)
		}
		draw.Draw(out, tile.Bounds().Add(offset), tile, tile.Bounds().Min, draw.Over)
	}
	return out
}

func (s *SurfaceSet) encodeTilesLocked(format string, quality int) ([]EncodedImage, error) {
	tiles := make([]EncodedImage, len(s.surfaces))
	for i, surf := range s.surfaces {
		data, err := encodeImage(surf.composite(s.progressPx), format, quality)
		if err != nil {
			return nil, err
		}
		tiles[i] = EncodedImage{Format: format, Data: data}
	}
	return tiles, nil
}

// composite overlays the progress store on the wave store, revealed up
// to the set-wide progress position. Without a progress overlay the
// wave image is returned as is.
func (s *Surface) composite(progressPx int) image.Image {
	base := s.wave.Image()
	if s.progress == nil {
		return base
	}
	local := clampInt(progressPx-s.left, 0, s.width)
	if local <= 0 {
		return base
	}

	b := base.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, base, b.Min, draw.Src)

	reveal := image.Rect(0, 0, local, s.height)
	if s.vertical {
		reveal = image.Rect(0, 0, s.height, local)
	}
	draw.Draw(out, reveal, s.progress.Image(), reveal.Min, draw.Over)
	return out
}

// encodeImage encodes a decoded image in the requested format.
func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("render: encode png: %w", err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("render: encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return buf.Bytes(), nil
}
