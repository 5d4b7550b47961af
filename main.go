// ABOUTME: Entry point for the interactive wavetile preview
// ABOUTME: Parses CLI flags, loads peaks, and starts the terminal UI
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/wavetile/wavetile-go/internal/config"
	"github.com/wavetile/wavetile-go/internal/ui"
	"github.com/wavetile/wavetile-go/internal/version"
	"github.com/wavetile/wavetile-go/pkg/peaks"
	"github.com/wavetile/wavetile-go/pkg/render"
)

var (
	peaksFile  = flag.String("peaks", "", "Path to a peaks JSON file (required)")
	configFile = flag.String("config", "", "Path to wavetile.yaml (default: search . and ~/.config/wavetile)")
	height     = flag.Int("height", 0, "Waveform height in logical pixels (overrides config)")
	bars       = flag.Bool("bars", false, "Start in bar style instead of line")
	logFile    = flag.String("log-file", "wavetile.log", "Log file path")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	if *peaksFile == "" {
		log.Fatalf("Usage: wavetile -peaks <file.json> [-config wavetile.yaml] [-bars]")
	}

	// TUI mode: log to file only, so the alternate screen stays clean.
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()
	log.SetOutput(f)

	if *debug {
		render.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	log.Printf("Starting %s %s", version.Product, version.Version)

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

	channels, err := peaks.LoadFile(*peaksFile)
	if err != nil {
		log.Fatalf("Failed to load peaks: %v", err)
	}
	log.Printf("Loaded %d channel(s) from %s", len(channels), *peaksFile)

	set, err := render.New(params)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer func() { _ = set.Close() }()

	model := ui.NewModel(set, render.Peaks(channels), params, *bars)
	if err := ui.Run(model); err != nil {
		log.Fatalf("TUI error: %v", err)
	}

	log.Printf("Preview stopped")
}
