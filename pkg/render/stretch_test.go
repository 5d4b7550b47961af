// ABOUTME: Tests for the snapshot-stretch pseudo-zoom path
// ABOUTME: Covers the blank no-backup case and the backed-up restretch
package render

import (
	"testing"
)

func TestStretchWithoutBackupStaysBlank(t *testing.T) {
	s := mustSet(t, Params{
		WaveColor:       FlatColor("#ffffff"),
		ProgressColor:   FlatColor("#ff0000"),
		Height:          16,
		Normalize:       true,
		MaxSurfaceWidth: 32,
	})
	if err := s.Resize(40, 16); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	if err := s.StretchToWidth(80, 0.5); err != nil {
		t.Fatalf("StretchToWidth: %v", err)
	}

	if got := s.Width(); got != 80 {
		t.Errorf("Width() = %d after stretch, want 80", got)
	}
	if got, want := s.SurfaceCount(), 3; got != want {
		t.Errorf("SurfaceCount() = %d, want %d", got, want)
	}
	if got := s.ProgressWidth(); got != 40 {
		t.Errorf("ProgressWidth() = %d, want 40", got)
	}
	img := s.Composite()
	for _, x := range []int{1, 20, 40, 78} {
		if alphaAt(img, x, 8) != 0 {
			t.Fatalf("pixel (%d,8) painted with no backup to stretch from", x)
		}
	}
}

func TestStretchRedrawsFromBackup(t *testing.T) {
	s := mustSet(t, Params{
		WaveColor: FlatColor("#ffffff"),
		Height:    16,
		Normalize: true,
	})
	if err := s.Resize(40, 16); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	series := make([]float64, 40)
	for i := range series {
		series[i] = 1
	}
	if err := s.RenderLine(SingleChannel(series), 0, 40); err != nil {
		t.Fatalf("RenderLine: %v", err)
	}
	s.Flush()
	if !s.HasBackup() {
		t.Fatal("no backup after a fully drawn render")
	}

	if err := s.StretchToWidth(80, 0); err != nil {
		t.Fatalf("StretchToWidth: %v", err)
	}

	if got := s.Width(); got != 80 {
		t.Errorf("Width() = %d after stretch, want 80", got)
	}
	img := s.Composite()
	if alphaAt(img, 10, 8) == 0 {
		t.Error("stretched surface blank near the start")
	}
	if alphaAt(img, 70, 8) == 0 {
		t.Error("stretched surface blank near the end")
	}
}

func TestStretchSurvivesMultipleSourceTiles(t *testing.T) {
	s := mustSet(t, Params{
		WaveColor:       FlatColor("#ffffff"),
		Height:          16,
		Normalize:       true,
		MaxSurfaceWidth: 32,
	})
	if err := s.Resize(60, 16); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	series := make([]float64, 60)
	for i := range series {
		series[i] = 1
	}
	if err := s.RenderLine(SingleChannel(series), 0, 60); err != nil {
		t.Fatalf("RenderLine: %v", err)
	}
	s.Flush()
	if !s.HasBackup() {
		t.Fatal("no backup after a fully drawn render")
	}

	// Half the original width: two source tiles land on the new tiling.
	if err := s.StretchToWidth(30, 0); err != nil {
		t.Fatalf("StretchToWidth: %v", err)
	}
	img := s.Composite()
	if alphaAt(img, 5, 8) == 0 {
		t.Error("left source tile missing after shrink")
	}
	if alphaAt(img, 25, 8) == 0 {
		t.Error("right source tile missing after shrink")
	}
}

func TestStretchOnClosedSet(t *testing.T) {
	s := mustSet(t, Params{Height: 16})
	if err := s.Resize(16, 16); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.StretchToWidth(32, 0); err != ErrClosed {
		t.Errorf("StretchToWidth on closed set = %v, want ErrClosed", err)
	}
}
