// ABOUTME: Tests for configuration loading and Params conversion
// ABOUTME: Defaults, yaml parsing, gradients, and channel color maps
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wavetile/wavetile-go/pkg/render"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(cwd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Height != 128 {
		t.Errorf("default height = %d, want 128", cfg.Render.Height)
	}
	if cfg.Export.Format != render.FormatPNG {
		t.Errorf("default format = %q, want png", cfg.Export.Format)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if p.BarGap != nil {
		t.Error("default bar gap should stay derived (nil)")
	}
	if _, ok := p.WaveColor.(render.FlatColor); !ok {
		t.Errorf("default wave color = %T, want flat color", p.WaveColor)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavetile.yaml")
	doc := `
render:
  height: 64
  bar_gap: 2
  normalize: true
  wave_color: ["#001122", "#334455"]
  progress_color: ["#ff0000"]
split_channels:
  enabled: true
  overlay: true
  filter_channels: [2]
  channel_colors:
    "1": ["#00ff00"]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}

	if p.Height != 64 || !p.Normalize || !p.SplitChannels {
		t.Errorf("params = height %d normalize %v split %v", p.Height, p.Normalize, p.SplitChannels)
	}
	if p.BarGap == nil || *p.BarGap != 2 {
		t.Errorf("bar gap = %v, want 2", p.BarGap)
	}
	if _, ok := p.WaveColor.(render.GradientStops); !ok {
		t.Errorf("wave color = %T, want gradient", p.WaveColor)
	}
	if _, ok := p.ProgressColor.(render.FlatColor); !ok {
		t.Errorf("progress color = %T, want flat color", p.ProgressColor)
	}
	if !p.SplitChannelOptions.Overlay {
		t.Error("overlay option lost")
	}
	if len(p.SplitChannelOptions.FilterChannels) != 1 || p.SplitChannelOptions.FilterChannels[0] != 2 {
		t.Errorf("filter channels = %v", p.SplitChannelOptions.FilterChannels)
	}
	cc, ok := p.SplitChannelOptions.ChannelColors[1]
	if !ok || cc.WaveColor == nil {
		t.Errorf("channel colors = %v", p.SplitChannelOptions.ChannelColors)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing explicit config file accepted")
	}
}

func TestParamsRejectsBadChannelKey(t *testing.T) {
	var cfg Config
	cfg.SplitChannels.ChannelColors = map[string][]string{"left": {"#fff"}}
	if _, err := cfg.Params(); err == nil {
		t.Error("non-numeric channel key accepted")
	}
}
