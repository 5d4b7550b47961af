// ABOUTME: Downsamples rendered waveform images to ANSI half-block cells
// ABOUTME: One terminal cell carries two vertically stacked pixels
package ui

import (
	"fmt"
	"image"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Cells converts an image to colored half-block text, cols wide and
// rows tall. Each cell's upper half is the foreground color of "▀",
// its lower half the background.
func Cells(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}

	scaled := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Over, nil)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			tr, tg, tb := rgb8(scaled, col, row*2)
			br, bg, bb := rgb8(scaled, col, row*2+1)
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		b.WriteString("\x1b[0m\n")
	}
	return b.String()
}

func rgb8(img *image.RGBA, x, y int) (uint8, uint8, uint8) {
	c := img.RGBAAt(x, y)
	return c.R, c.G, c.B
}
