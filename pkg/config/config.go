// Package config loads treemap settings from a TOML file, a .env file and
// TREEMAP_* environment variables.
//
// Precedence, lowest first: built-in defaults, the config file, the
// environment. Command-line flags are applied on top by the CLI.
//
// The dataset URL is not configurable and has no key here.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/render/palette"
)

const (
	// appName names the config directory.
	appName = "treemap"

	// envPrefix prefixes every environment override.
	envPrefix = "TREEMAP_"

	// DefaultAddr is the listen address of the HTTP server.
	DefaultAddr = "127.0.0.1:8080"
)

// Config holds every user-tunable setting.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
}

// CanvasConfig sizes the layout.
type CanvasConfig struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	PaddingInner float64 `toml:"padding_inner"`
	PaddingOuter float64 `toml:"padding_outer"`
}

// RenderConfig controls colors and overlays.
type RenderConfig struct {
	Palette    []string `toml:"palette"`
	LegendRows int      `toml:"legend_rows"`
	Tooltips   bool     `toml:"tooltips"`
}

// ServerConfig configures `treemap serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:        pipeline.DefaultWidth,
			Height:       pipeline.DefaultHeight,
			PaddingInner: pipeline.DefaultPaddingInner,
			PaddingOuter: pipeline.DefaultPaddingOuter,
		},
		Render: RenderConfig{
			Palette:    palette.Default(),
			LegendRows: pipeline.DefaultLegendRows,
			Tooltips:   true,
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/treemap/config.toml, falling back to
// ~/.config/treemap/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load builds the effective configuration.
//
// An empty path means the default location, where a missing file is not an
// error. An explicit path must exist. A .env file in the working directory is
// loaded into the environment if present; variables already set win.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.readFile(path, explicit); err != nil {
			return Config{}, err
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if _, err := toml.Decode(string(data), c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var err error
	if c.Canvas.Width, err = getEnvFloat("WIDTH", c.Canvas.Width); err != nil {
		return err
	}
	if c.Canvas.Height, err = getEnvFloat("HEIGHT", c.Canvas.Height); err != nil {
		return err
	}
	if c.Canvas.PaddingInner, err = getEnvFloat("PADDING_INNER", c.Canvas.PaddingInner); err != nil {
		return err
	}
	if c.Canvas.PaddingOuter, err = getEnvFloat("PADDING_OUTER", c.Canvas.PaddingOuter); err != nil {
		return err
	}
	if c.Render.LegendRows, err = getEnvInt("LEGEND_ROWS", c.Render.LegendRows); err != nil {
		return err
	}
	if c.Render.Tooltips, err = getEnvBool("TOOLTIPS", c.Render.Tooltips); err != nil {
		return err
	}
	c.Render.Palette = getEnvSlice("PALETTE", c.Render.Palette)
	c.Server.Addr = getEnv("ADDR", c.Server.Addr)
	return nil
}

// Validate checks the canvas, palette and legend settings.
func (c Config) Validate() error {
	if err := errors.ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return err
	}
	if err := errors.ValidatePadding("inner", c.Canvas.PaddingInner); err != nil {
		return err
	}
	if err := errors.ValidatePadding("outer", c.Canvas.PaddingOuter); err != nil {
		return err
	}
	if _, err := c.ParsedPalette(); err != nil {
		return err
	}
	if c.Render.LegendRows < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "legend_rows must be at least 1, got %d", c.Render.LegendRows)
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server addr cannot be empty")
	}
	return nil
}

// ParsedPalette normalizes the configured colors.
func (c Config) ParsedPalette() (palette.Palette, error) {
	return palette.Parse(strings.Join(c.Render.Palette, ","))
}

// Options returns pipeline options seeded from the configuration. Callers
// override individual fields from flags afterwards.
func (c Config) Options() (pipeline.Options, error) {
	p, err := c.ParsedPalette()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Width:        c.Canvas.Width,
		Height:       c.Canvas.Height,
		PaddingInner: c.Canvas.PaddingInner,
		PaddingOuter: c.Canvas.PaddingOuter,
		Palette:      p,
		LegendRows:   c.Render.LegendRows,
		Tooltips:     c.Render.Tooltips,
	}, nil
}

// Encode writes the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Environment helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(envPrefix + key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(envPrefix + key)
	if !ok || value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", envPrefix, key)
	}
	return f, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(envPrefix + key)
	if !ok || value == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", envPrefix, key)
	}
	return i, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(envPrefix + key)
	if !ok || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", envPrefix, key)
	}
	return b, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value, ok := os.LookupEnv(envPrefix + key)
	if !ok || value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
