package main

import (
	"testing"

	"github.com/ayn2op/carousel/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// parseConfig runs loadConfig behind the snapshot flags with args.
func parseConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var (
		cfg *Config
		err error
	)
	app := &cli.App{
		Name:  "carousel",
		Flags: append(snapshotFlags(), runFlags()[len(commonFlags()):]...),
		Action: func(c *cli.Context) error {
			cfg, err = loadConfig(c)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"carousel"}, args...)))
	return cfg, err
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(t)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Items)
	assert.Equal(t, 40, cfg.CardWidth)
	assert.Equal(t, 7, cfg.CardHeight)
	assert.InDelta(t, 0.5, cfg.Spacing, 1e-9)
	assert.True(t, cfg.Align)
	assert.False(t, cfg.Perspective)
	assert.Equal(t, 60, cfg.FrameRate)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CAROUSEL_ITEMS", "12")
	t.Setenv("CAROUSEL_PERSPECTIVE", "true")
	t.Setenv("CAROUSEL_ALIGN", "false")

	cfg, err := parseConfig(t)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Items)
	assert.True(t, cfg.Perspective)
	assert.False(t, cfg.Align)
}

func TestLoadConfigFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("CAROUSEL_ITEMS", "12")

	cfg, err := parseConfig(t, "--items", "3", "-s", "2", "--card-height", "5", "-W", "80")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Items)
	assert.Equal(t, 2, cfg.Selection)
	assert.Equal(t, 5, cfg.CardHeight)
	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, 24, cfg.Height)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	_, err := parseConfig(t, "--items", "-1")
	assert.Error(t, err)

	_, err = parseConfig(t, "--width", "0")
	assert.Error(t, err)
}

func TestEngineConfig(t *testing.T) {
	cfg, err := parseConfig(t, "--perspective", "--shrink", "--spacing", "0.25")
	require.NoError(t, err)

	ec, err := cfg.EngineConfig()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, ec.Spacing, 1e-9)
	assert.True(t, ec.ShrinkOnRefill)
	require.NotNil(t, ec.Perspective)
	assert.InDelta(t, 1.1, ec.Perspective.MaxScale, 1e-9)

	cfg.CardHeight = 0
	_, err = cfg.EngineConfig()
	assert.ErrorIs(t, err, engine.ErrInvalidConfiguration)
}
