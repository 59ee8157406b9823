package main

import (
	"fmt"

	"github.com/ayn2op/carousel"
	"github.com/ayn2op/carousel/engine"
	"github.com/caarlos0/env/v11"
	"github.com/urfave/cli/v2"
)

// Config holds all configuration for the carousel commands.
type Config struct {
	// Application settings
	Verbose bool   `env:"CAROUSEL_VERBOSE" envDefault:"false"`
	LogFile string `env:"CAROUSEL_LOG_FILE"`

	// Content settings
	File      string `env:"CAROUSEL_FILE"`
	Items     int    `env:"CAROUSEL_ITEMS" envDefault:"50"`
	Selection int    `env:"CAROUSEL_SELECT" envDefault:"0"`

	// Layout settings
	CardWidth   int     `env:"CAROUSEL_CARD_WIDTH" envDefault:"40"`
	CardHeight  int     `env:"CAROUSEL_CARD_HEIGHT" envDefault:"7"`
	Spacing     float64 `env:"CAROUSEL_SPACING" envDefault:"0.5"`
	Perspective bool    `env:"CAROUSEL_PERSPECTIVE" envDefault:"false"`
	Shrink      bool    `env:"CAROUSEL_SHRINK" envDefault:"false"`
	Align       bool    `env:"CAROUSEL_ALIGN" envDefault:"true"`
	FrameRate   int     `env:"CAROUSEL_FPS" envDefault:"60"`

	// Snapshot settings
	Width  int `env:"CAROUSEL_WIDTH" envDefault:"60"`
	Height int `env:"CAROUSEL_HEIGHT" envDefault:"24"`

	// Metrics settings
	MetricsAddr string `env:"CAROUSEL_METRICS_ADDR"`
}

// loadConfig reads the environment and applies the flags set on c.
func loadConfig(c *cli.Context) (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyFlags(c)
	if cfg.Items < 0 {
		return nil, fmt.Errorf("items must not be negative, got %d", cfg.Items)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	return &cfg, nil
}

func (cfg *Config) applyFlags(c *cli.Context) {
	for name, apply := range map[string]func(){
		"verbose":      func() { cfg.Verbose = c.Bool("verbose") },
		"log-file":     func() { cfg.LogFile = c.String("log-file") },
		"file":         func() { cfg.File = c.String("file") },
		"items":        func() { cfg.Items = c.Int("items") },
		"select":       func() { cfg.Selection = c.Int("select") },
		"card-width":   func() { cfg.CardWidth = c.Int("card-width") },
		"card-height":  func() { cfg.CardHeight = c.Int("card-height") },
		"spacing":      func() { cfg.Spacing = c.Float64("spacing") },
		"perspective":  func() { cfg.Perspective = c.Bool("perspective") },
		"shrink":       func() { cfg.Shrink = c.Bool("shrink") },
		"align":        func() { cfg.Align = c.Bool("align") },
		"fps":          func() { cfg.FrameRate = c.Int("fps") },
		"width":        func() { cfg.Width = c.Int("width") },
		"height":       func() { cfg.Height = c.Int("height") },
		"metrics-addr": func() { cfg.MetricsAddr = c.String("metrics-addr") },
	} {
		if c.IsSet(name) {
			apply()
		}
	}
}

// EngineConfig converts cfg into a validated engine configuration.
func (cfg *Config) EngineConfig() (engine.Config, error) {
	ec := carousel.DefaultConfig()
	ec.ElementWidth = cfg.CardWidth
	ec.ElementHeight = cfg.CardHeight
	ec.Spacing = cfg.Spacing
	ec.InitialSelection = cfg.Selection
	ec.ShrinkOnRefill = cfg.Shrink
	ec.AlignOnRest = cfg.Align
	ec.FrameRate = cfg.FrameRate
	if cfg.Perspective {
		p := carousel.PerspectiveParams()
		ec.Perspective = &p
	}
	if err := ec.Validate(); err != nil {
		return engine.Config{}, err
	}
	return ec, nil
}
