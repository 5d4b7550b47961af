// ABOUTME: Surface snapshot capture to encoded images
// ABOUTME: Synchronous and deferred modes plus decode for stretch restore
package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gogpu/gg"
)

// Encode formats accepted by snapshot capture and image export.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// EncodedImage is one encoded raster capture.
type EncodedImage struct {
	Format string
	Data   []byte
}

// SnapshotResult delivers a deferred snapshot capture.
type SnapshotResult struct {
	Image EncodedImage
	Err   error
}

// encodeContext encodes a context's current pixel content.
func encodeContext(ctx *gg.Context, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := ctx.EncodePNG(&buf); err != nil {
			return nil, fmt.Errorf("render: encode png: %w", err)
		}
	case FormatJPEG:
		if err := ctx.EncodeJPEG(&buf, quality); err != nil {
			return nil, fmt.Errorf("render: encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return buf.Bytes(), nil
}

// Snapshot encodes the wave surface's current pixel content.
func (s *Surface) Snapshot(format string, quality int) (EncodedImage, error) {
	if s.wave == nil {
		return EncodedImage{}, ErrMissingSurface
	}
	data, err := encodeContext(s.wave, format, quality)
	if err != nil {
		return EncodedImage{}, err
	}
	return EncodedImage{Format: format, Data: data}, nil
}

// SnapshotDeferred encodes the wave surface off the caller's turn,
// delivering the result on the returned channel. The channel is closed
// after one send.
func (s *Surface) SnapshotDeferred(format string, quality int) <-chan SnapshotResult {
	out := make(chan SnapshotResult, 1)
	img, err := s.Snapshot(format, quality)
	go func() {
		out <- SnapshotResult{Image: img, Err: err}
		close(out)
	}()
	return out
}

// captureSnapshots caches encoded PNG copies of both stores for the
// stretch-fallback path. A failed encode leaves the caches empty so
// backup capture keeps waiting.
func (s *Surface) captureSnapshots() error {
	if s.wave == nil {
		return ErrMissingSurface
	}
	wave, err := encodeContext(s.wave, FormatPNG, 0)
	if err != nil {
		return err
	}
	var progress []byte
	if s.progress != nil {
		progress, err = encodeContext(s.progress, FormatPNG, 0)
		if err != nil {
			return err
		}
	}
	s.waveSnap = wave
	s.progressSnap = progress
	return nil
}

// decodeSnapshot turns cached encoded bytes back into a drawable image.
func decodeSnapshot(data []byte) (*gg.ImageBuf, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("render: decode snapshot: %w", err)
	}
	return gg.ImageBufFromImage(img), nil
}
