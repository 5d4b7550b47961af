// ABOUTME: Entry point for the wavetile live preview server
// ABOUTME: Parses CLI flags and starts the websocket tile server
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/wavetile/wavetile-go/internal/config"
	"github.com/wavetile/wavetile-go/internal/server"
	"github.com/wavetile/wavetile-go/pkg/peaks"
	"github.com/wavetile/wavetile-go/pkg/render"
)

var (
	port       = flag.Int("port", 8930, "HTTP server port")
	name       = flag.String("name", "", "Server friendly name (default: hostname-wavetile)")
	peaksFile  = flag.String("peaks", "", "Path to a peaks JSON file (required)")
	configFile = flag.String("config", "", "Path to wavetile.yaml")
	logFile    = flag.String("log-file", "wavetile-serve.log", "Log file path")
	debug      = flag.Bool("debug", false, "Enable debug logging")
	noMDNS     = flag.Bool("no-mdns", false, "Disable mDNS advertisement")
)

func main() {
	flag.Parse()

	if *peaksFile == "" {
		log.Fatalf("Usage: wavetile-serve -peaks <file.json> [-port 8930] [-no-mdns]")
	}

	// Set up logging (both file and console)
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	multiWriter := io.MultiWriter(os.Stdout, f)
	log.SetOutput(multiWriter)

	// Determine server name
	serverName := *name
	if serverName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		serverName = fmt.Sprintf("%s-wavetile", hostname)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	params, err := cfg.Params()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	channels, err := peaks.LoadFile(*peaksFile)
	if err != nil {
		log.Fatalf("Failed to load peaks: %v", err)
	}

	log.Printf("Starting Wavetile Server: %s on port %d", serverName, *port)
	log.Printf("Serving %d channel(s) from %s", len(channels), *peaksFile)
	log.Printf("Press Ctrl-C to stop")

	srv := server.New(server.Config{
		Port:       *port,
		Name:       serverName,
		EnableMDNS: !*noMDNS,
		Debug:      *debug,
	}, params, render.Peaks(channels))

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received %v signal, shutting down gracefully...", sig)
		srv.Stop()
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Printf("Server stopped")
}
