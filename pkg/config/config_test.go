package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treemap/pkg/errors"
)

// isolate points the default config location at an empty directory and
// clears every override.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"WIDTH", "HEIGHT", "PADDING_INNER", "PADDING_OUTER", "LEGEND_ROWS", "TOOLTIPS", "PALETTE", "ADDR"} {
		t.Setenv(envPrefix+key, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canvas.Width != 960 || cfg.Canvas.Height != 570 {
		t.Errorf("canvas = %vx%v, want 960x570", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Canvas.PaddingInner != 1 || cfg.Canvas.PaddingOuter != 0 {
		t.Errorf("padding = %v/%v, want 1/0", cfg.Canvas.PaddingInner, cfg.Canvas.PaddingOuter)
	}
	if len(cfg.Render.Palette) != 18 {
		t.Errorf("palette has %d colors, want 18", len(cfg.Render.Palette))
	}
	if !cfg.Render.Tooltips {
		t.Error("tooltips should default on")
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
}

func TestLoadDefaultPathFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, appName, "config.toml"), `
[canvas]
width = 1200
padding_outer = 3

[render]
palette = ["#abc", "#112233"]
tooltips = false
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canvas.Width != 1200 {
		t.Errorf("width = %v, want 1200", cfg.Canvas.Width)
	}
	if cfg.Canvas.Height != 570 {
		t.Errorf("height = %v, want default 570", cfg.Canvas.Height)
	}
	if cfg.Canvas.PaddingOuter != 3 {
		t.Errorf("padding_outer = %v, want 3", cfg.Canvas.PaddingOuter)
	}
	if cfg.Render.Tooltips {
		t.Error("tooltips should be off")
	}

	p, err := cfg.ParsedPalette()
	if err != nil {
		t.Fatalf("ParsedPalette: %v", err)
	}
	if got := p.String(); got != "#aabbcc,#112233" {
		t.Errorf("palette = %q", got)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("missing explicit file: got %v, want INVALID_CONFIG", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, bad, "[canvas\nwidth = ")
	if _, err := Load(bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("malformed file: got %v, want INVALID_CONFIG", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, appName, "config.toml"), "[canvas]\nwidth = 1200\n")

	t.Setenv("TREEMAP_WIDTH", "800")
	t.Setenv("TREEMAP_PADDING_INNER", "2.5")
	t.Setenv("TREEMAP_ADDR", ":9000")
	t.Setenv("TREEMAP_PALETTE", "#000000, #ffffff")
	t.Setenv("TREEMAP_TOOLTIPS", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canvas.Width != 800 {
		t.Errorf("env should beat file: width = %v", cfg.Canvas.Width)
	}
	if cfg.Canvas.PaddingInner != 2.5 {
		t.Errorf("padding_inner = %v", cfg.Canvas.PaddingInner)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Render.Palette) != 2 || cfg.Render.Palette[1] != "#ffffff" {
		t.Errorf("palette = %v", cfg.Render.Palette)
	}
	if cfg.Render.Tooltips {
		t.Error("tooltips should be off")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		code errors.Code
	}{
		{"non-numeric width", "WIDTH", "wide", errors.ErrCodeInvalidConfig},
		{"zero height", "HEIGHT", "0", errors.ErrCodeInvalidCanvas},
		{"negative padding", "PADDING_OUTER", "-2", errors.ErrCodeInvalidCanvas},
		{"bad color", "PALETTE", "#12345g", errors.ErrCodeInvalidColor},
		{"bad bool", "TOOLTIPS", "sometimes", errors.ErrCodeInvalidConfig},
		{"zero legend rows", "LEGEND_ROWS", "0", errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(envPrefix+tt.key, tt.val)

			_, err := Load("")
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Canvas.PaddingOuter = 4
	cfg.Render.Palette = []string{"#f00"}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.Width != 960 || opts.PaddingOuter != 4 {
		t.Errorf("canvas not copied: %+v", opts)
	}
	if len(opts.Palette) != 1 || opts.Palette[0] != "#ff0000" {
		t.Errorf("palette = %v", opts.Palette)
	}
	if !opts.Tooltips {
		t.Error("tooltips not copied")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = "0.0.0.0:80"

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(data), "[canvas]") {
		t.Errorf("missing [canvas] table:\n%s", data)
	}

	var back Config
	if _, err := toml.Decode(string(data), &back); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.Server.Addr != cfg.Server.Addr || back.Canvas.Width != cfg.Canvas.Width {
		t.Errorf("round trip mismatch: %+v", back)
	}
}
