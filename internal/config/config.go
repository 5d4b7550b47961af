// ABOUTME: Viper-based configuration loading for the wavetile CLIs
// ABOUTME: Maps a wavetile.yaml file and WAVETILE_* env vars to render.Params
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"github.com/wavetile/wavetile-go/pkg/render"
)

// Config is the file/env representation of the renderer options. Color
// fields hold hex strings; a color with multiple entries becomes a
// gradient.
type Config struct {
	Debug bool `mapstructure:"debug"`

	Render struct {
		WaveColor       []string `mapstructure:"wave_color"`
		ProgressColor   []string `mapstructure:"progress_color"`
		BarWidth        float64  `mapstructure:"bar_width"`
		BarGap          float64  `mapstructure:"bar_gap"`
		BarMinHeight    float64  `mapstructure:"bar_min_height"`
		BarRadius       float64  `mapstructure:"bar_radius"`
		BarHeight       float64  `mapstructure:"bar_height"`
		Height          int      `mapstructure:"height"`
		PixelRatio      float64  `mapstructure:"pixel_ratio"`
		MaxSurfaceWidth int      `mapstructure:"max_surface_width"`
		Normalize       bool     `mapstructure:"normalize"`
		FillParent      bool     `mapstructure:"fill_parent"`
		Vertical        bool     `mapstructure:"vertical"`
	} `mapstructure:"render"`

	SplitChannels struct {
		Enabled               bool                `mapstructure:"enabled"`
		Overlay               bool                `mapstructure:"overlay"`
		RelativeNormalization bool                `mapstructure:"relative_normalization"`
		FilterChannels        []int               `mapstructure:"filter_channels"`
		ChannelColors         map[string][]string `mapstructure:"channel_colors"`
	} `mapstructure:"split_channels"`

	Export struct {
		Format  string `mapstructure:"format"`
		Quality int    `mapstructure:"quality"`
	} `mapstructure:"export"`
}

// Load reads wavetile.yaml (from configPath when given, else the
// working directory and $HOME/.config/wavetile) plus WAVETILE_* env
// overrides. A missing config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("wavetile")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "wavetile"))
		}
	}

	v.SetEnvPrefix("WAVETILE")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// An explicit -config path must exist.
			if configPath != "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("render.wave_color", []string{"#999"})
	v.SetDefault("render.bar_width", 1)
	v.SetDefault("render.bar_gap", -1) // negative means derive
	v.SetDefault("render.bar_height", 1)
	v.SetDefault("render.height", 128)
	v.SetDefault("render.pixel_ratio", 1)
	v.SetDefault("render.max_surface_width", 4000)
	v.SetDefault("render.normalize", false)
	v.SetDefault("render.fill_parent", true)

	v.SetDefault("export.format", render.FormatPNG)
	v.SetDefault("export.quality", 90)
}

// Params converts the loaded configuration into renderer parameters.
func (c *Config) Params() (render.Params, error) {
	p := render.Params{
		WaveColor:       fillStyle(c.Render.WaveColor),
		ProgressColor:   fillStyle(c.Render.ProgressColor),
		BarWidth:        c.Render.BarWidth,
		BarMinHeight:    c.Render.BarMinHeight,
		BarRadius:       c.Render.BarRadius,
		BarHeight:       c.Render.BarHeight,
		Height:          c.Render.Height,
		PixelRatio:      c.Render.PixelRatio,
		MaxSurfaceWidth: c.Render.MaxSurfaceWidth,
		Normalize:       c.Render.Normalize,
		FillParent:      c.Render.FillParent,
		Vertical:        c.Render.Vertical,
		SplitChannels:   c.SplitChannels.Enabled,
	}

	if c.Render.BarGap >= 0 {
		gap := c.Render.BarGap
		p.BarGap = &gap
	}

	p.SplitChannelOptions = render.SplitChannelOptions{
		Overlay:               c.SplitChannels.Overlay,
		RelativeNormalization: c.SplitChannels.RelativeNormalization,
		FilterChannels:        c.SplitChannels.FilterChannels,
	}

	if len(c.SplitChannels.ChannelColors) > 0 {
		colors := make(map[int]render.ChannelColors, len(c.SplitChannels.ChannelColors))
		for key, stops := range c.SplitChannels.ChannelColors {
			idx, err := strconv.Atoi(key)
			if err != nil {
				return render.Params{}, fmt.Errorf("config: channel_colors key %q is not a channel index", key)
			}
			colors[idx] = render.ChannelColors{WaveColor: fillStyle(stops)}
		}
		p.SplitChannelOptions.ChannelColors = colors
	}

	return p, nil
}

// fillStyle maps a hex string list to a renderer fill style: nil for
// empty, a flat color for one entry, a gradient otherwise.
func fillStyle(stops []string) render.FillStyle {
	switch len(stops) {
	case 0:
		return nil
	case 1:
		return render.FlatColor(stops[0])
	default:
		return render.GradientStops(stops)
	}
}
