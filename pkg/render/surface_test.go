// ABOUTME: Tests for the surface pair's rasterization primitives
// ABOUTME: Rect normalization, rounded corners, orientation, snapshots
package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gg"
)

func newTestSurface(t *testing.T, width, height int, vertical bool) *Surface {
	t.Helper()
	factory := func(w, h int) *gg.Context { return gg.NewContext(w, h) }
	s, err := newSurface(factory, width, height, false, vertical, 0.5)
	if err != nil {
		t.Fatalf("newSurface: %v", err)
	}
	if err := s.setFillStyles(FlatColor("#ffffff"), nil); err != nil {
		t.Fatalf("setFillStyles: %v", err)
	}
	t.Cleanup(s.destroy)
	return s
}

func TestBindRequiresWaveContext(t *testing.T) {
	s := &Surface{}
	if err := s.bind(nil, nil); !errors.Is(err, ErrMissingSurface) {
		t.Errorf("bind(nil) = %v, want ErrMissingSurface", err)
	}
}

func TestFillRectZeroHeightNoop(t *testing.T) {
	s := newTestSurface(t, 16, 16, false)
	if err := s.fillRect(0, 0, 16, 0, 0); err != nil {
		t.Fatalf("fillRect: %v", err)
	}
	img := s.wave.Image()
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			if alphaAt(img, x, y) != 0 {
				t.Fatalf("pixel (%d,%d) painted by zero-height fill", x, y)
			}
		}
	}
}

func TestFillRectNegativeHeightNormalized(t *testing.T) {
	s := newTestSurface(t, 16, 16, false)
	// Height -4 from origin y=8 occupies y in [4, 8).
	if err := s.fillRect(0, 8, 4, -4, 0); err != nil {
		t.Fatalf("fillRect: %v", err)
	}
	img := s.wave.Image()
	if alphaAt(img, 1, 5) == 0 {
		t.Error("pixel inside normalized span not painted")
	}
	if alphaAt(img, 1, 9) != 0 {
		t.Error("pixel below origin painted")
	}
	if alphaAt(img, 1, 2) != 0 {
		t.Error("pixel above normalized span painted")
	}
}

func TestFillRectRoundedCorners(t *testing.T) {
	s := newTestSurface(t, 16, 16, false)
	if err := s.fillRect(0, 0, 12, 12, 4); err != nil {
		t.Fatalf("fillRect: %v", err)
	}
	img := s.wave.Image()
	center := alphaAt(img, 6, 6)
	corner := alphaAt(img, 0, 0)
	if center == 0 {
		t.Fatal("rounded rect center not painted")
	}
	if corner >= center {
		t.Errorf("corner alpha %d not reduced below center %d", corner, center)
	}
}

func TestVerticalOrientationSwapsAxes(t *testing.T) {
	s := newTestSurface(t, 8, 4, true)
	// Waveform-space rect near the right edge lands near the bottom of
	// the swapped backing store.
	if err := s.fillRect(6, 0, 2, 4, 0); err != nil {
		t.Fatalf("fillRect: %v", err)
	}
	img := s.wave.Image()
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 8 {
		t.Fatalf("backing dims = %dx%d, want 4x8", b.Dx(), b.Dy())
	}
	if alphaAt(img, 1, 7) == 0 {
		t.Error("swapped pixel not painted")
	}
	if alphaAt(img, 1, 1) != 0 {
		t.Error("pixel outside swapped rect painted")
	}
}

func TestClearResetsContentAndSnapshots(t *testing.T) {
	s := newTestSurface(t, 8, 8, false)
	if err := s.fillRect(0, 0, 8, 8, 0); err != nil {
		t.Fatalf("fillRect: %v", err)
	}
	if err := s.captureSnapshots(); err != nil {
		t.Fatalf("captureSnapshots: %v", err)
	}
	s.drawn = true

	s.clear()

	if s.drawn {
		t.Error("drawn flag survived clear")
	}
	if s.waveSnap != nil {
		t.Error("snapshot cache survived clear")
	}
	if alphaAt(s.wave.Image(), 4, 4) != 0 {
		t.Error("pixel content survived clear")
	}
}

func TestSnapshotFormats(t *testing.T) {
	s := newTestSurface(t, 8, 8, false)

	img, err := s.Snapshot(FormatPNG, 0)
	if err != nil {
		t.Fatalf("Snapshot png: %v", err)
	}
	if len(img.Data) == 0 {
		t.Error("png snapshot empty")
	}

	if _, err := s.Snapshot(FormatJPEG, 80); err != nil {
		t.Fatalf("Snapshot jpeg: %v", err)
	}

	if _, err := s.Snapshot("bmp", 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Snapshot bmp = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSnapshotDeferred(t *testing.T) {
	s := newTestSurface(t, 8, 8, false)
	res := <-s.SnapshotDeferred(FormatPNG, 0)
	if res.Err != nil {
		t.Fatalf("deferred snapshot: %v", res.Err)
	}
	if len(res.Image.Data) == 0 {
		t.Error("deferred snapshot empty")
	}
}

func TestDestroyIdempotent(t *testing.T) {
	factory := func(w, h int) *gg.Context { return gg.NewContext(w, h) }
	s, err := newSurface(factory, 8, 8, true, false, 0.5)
	if err != nil {
		t.Fatalf("newSurface: %v", err)
	}
	s.destroy()
	s.destroy()
	if _, err := s.Snapshot(FormatPNG, 0); !errors.Is(err, ErrMissingSurface) {
		t.Errorf("Snapshot after destroy = %v, want ErrMissingSurface", err)
	}
}

func TestGradientBrushStops(t *testing.T) {
	brush, err := brushFor(GradientStops{"#000000", "#888888", "#ffffff"}, 90)
	if err != nil {
		t.Fatalf("brushFor: %v", err)
	}
	grad, ok := brush.(*gg.LinearGradientBrush)
	if !ok {
		t.Fatalf("brush type %T, want *gg.LinearGradientBrush", brush)
	}
	if len(grad.Stops) != 3 {
		t.Fatalf("got %d stops, want 3", len(grad.Stops))
	}
	wantOffsets := []float64{0, 1.0 / 3.0, 2.0 / 3.0}
	for i, stop := range grad.Stops {
		if diff := stop.Offset - wantOffsets[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("stop %d offset = %v, want %v", i, stop.Offset, wantOffsets[i])
		}
	}
	if grad.End.Y != 90 {
		t.Errorf("gradient end Y = %v, want full height 90", grad.End.Y)
	}
}
