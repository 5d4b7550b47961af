// ABOUTME: Tests for half-block cell rendering
// ABOUTME: Dimensions, color codes, and degenerate sizes
package ui

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestCellsDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	out := Cells(img, 4, 2)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("rows = %d, want 2", len(lines))
	}
	for i, line := range lines {
		if got := strings.Count(line, "▀"); got != 4 {
			t.Errorf("row %d: %d cells, want 4", i, got)
		}
		if !strings.HasSuffix(line, "\x1b[0m") {
			t.Errorf("row %d missing reset sequence", i)
		}
	}
}

func TestCellsCarriesColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	out := Cells(img, 1, 1)
	if !strings.Contains(out, "38;2;255;0;0") {
		t.Errorf("foreground color missing from %q", out)
	}
}

func TestCellsDegenerateSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if out := Cells(img, 0, 3); out != "" {
		t.Errorf("zero columns produced %q", out)
	}
	if out := Cells(img, 3, 0); out != "" {
		t.Errorf("zero rows produced %q", out)
	}
}
