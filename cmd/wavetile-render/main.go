// ABOUTME: Batch waveform renderer
// ABOUTME: Reads a peaks JSON file and writes PNG/JPEG tiles or a composite
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/wavetile/wavetile-go/internal/config"
	"github.com/wavetile/wavetile-go/pkg/peaks"
	"github.com/wavetile/wavetile-go/pkg/render"
)

var (
	peaksFile  = flag.String("peaks", "", "Path to a peaks JSON file (required)")
	configFile = flag.String("config", "", "Path to wavetile.yaml")
	outDir     = flag.String("out", ".", "Output directory")
	width      = flag.Int("width", 0, "Total width in device pixels (default: one pixel pair per peak)")
	height     = flag.Int("height", 0, "Waveform height in logical pixels (overrides config)")
	bars       = flag.Bool("bars", false, "Render bars instead of a line")
	composite  = flag.Bool("composite", false, "Write one composite image instead of per-surface tiles")
	format     = flag.String("format", "", "Output format: png or jpeg (overrides config)")
	quality    = flag.Int("quality", 0, "JPEG quality 1-100 (overrides config)")
	progress   = flag.Float64("progress", 0, "Progress fraction 0-1 for the overlay reveal")
)

func main() {
	flag.Parse()

	log.SetFlags(0)

	if *peaksFile == "" {
		log.Fatalf("Usage: wavetile-render -peaks <file.json> [-out dir] [-composite]")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	params, err := cfg.Params()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	if *height > 0 {
		params.Height = *height
	}

	outFormat := cfg.Export.Format
	if *format != "" {
		outFormat = strings.ToLower(*format)
	}
	outQuality := cfg.Export.Quality
	if *quality > 0 {
		outQuality = *quality
	}

	channels, err := peaks.LoadFile(*peaksFile)
	if err != nil {
		log.Fatalf("Failed to load peaks: %v", err)
	}
	if len(channels) == 0 || len(channels[0]) == 0 {
		log.Fatalf("Peaks file %s holds no samples", *peaksFile)
	}

	set, err := render.New(params)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer func() { _ = set.Close() }()

	// One pixel column per peak unless FillParent scales to an
	// explicit width.
	totalWidth := *width
	if totalWidth <= 0 || !params.FillParent {
		totalWidth = int(float64(peaks.Columns(channels[0])) * params.PixelRatio)
		if totalWidth < 1 {
			totalWidth = 1
		}
	}

	bandPx := int(float64(params.Height) * params.PixelRatio)
	if bandPx <= 0 {
		bandPx = 128
	}
	if err := set.Resize(totalWidth, bandPx); err != nil {
		log.Fatalf("Resize failed: %v", err)
	}

	input := render.Peaks(channels)
	if *bars {
		err = set.RenderBars(input, 0, set.Width())
	} else {
		err = set.RenderLine(input, 0, set.Width())
	}
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	set.Flush()
	set.UpdateProgress(int(*progress * float64(set.Width())))

	base := strings.TrimSuffix(filepath.Base(*peaksFile), filepath.Ext(*peaksFile))
	ext := "png"
	if outFormat == render.FormatJPEG {
		ext = "jpg"
	}

	if *composite {
		res, err := set.GetImage(outFormat, outQuality, render.ImageSingle)
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		path := filepath.Join(*outDir, fmt.Sprintf("%s.%s", base, ext))
		if err := os.WriteFile(path, res.Single.Data, 0o644); err != nil {
			log.Fatalf("Write failed: %v", err)
		}
		log.Printf("Wrote %s (%dx%d)", path, set.Width(), set.Height())
		return
	}

	res, err := set.GetImage(outFormat, outQuality, render.ImageTiles)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	surfaces := set.Surfaces()
	for i, tile := range res.Tiles {
		path := filepath.Join(*outDir, fmt.Sprintf("%s-%02d.%s", base, i, ext))
		if err := os.WriteFile(path, tile.Data, 0o644); err != nil {
			log.Fatalf("Write failed: %v", err)
		}
		log.Printf("Wrote %s (left %d, width %d)", path, surfaces[i].Left(), surfaces[i].Width())
	}
}
