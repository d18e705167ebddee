// Package config loads the editor settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"nodegraph/internal/scene"
)

var validate = validator.New()

// Config holds nodegraph configuration.
type Config struct {
	LogLevel string          `toml:"log_level" validate:"oneof=debug info warn error"`
	Node     scene.NodeStyle `toml:"node"`
	Port     scene.PortStyle `toml:"port"`
	View     ViewConfig      `toml:"view"`
	Export   ExportConfig    `toml:"export"`
	Editor   EditorConfig    `toml:"editor"`
}

// ViewConfig controls the terminal viewport.
type ViewConfig struct {
	ZoomIn     float64 `toml:"zoom_in" validate:"gt=1"`
	ZoomOut    float64 `toml:"zoom_out" validate:"gt=0,lt=1"`
	PanStep    float64 `toml:"pan_step" validate:"gt=0"`
	CellWidth  float64 `toml:"cell_width" validate:"gt=0"`
	CellHeight float64 `toml:"cell_height" validate:"gt=0"`
	// Grid is the background grid spacing in scene units; 0 hides it.
	Grid float64 `toml:"grid" validate:"gte=0"`
}

// ExportConfig controls PNG export.
type ExportConfig struct {
	Directory string  `toml:"directory"`
	Scale     float64 `toml:"scale" validate:"gt=0,lte=64"`
}

// EditorConfig controls editor behavior.
type EditorConfig struct {
	Confirmations bool `toml:"confirmations"`
	Demo          bool `toml:"demo"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Node:     scene.DefaultNodeStyle(),
		Port:     scene.DefaultPortStyle(),
		View: ViewConfig{
			ZoomIn:     1.25,
			ZoomOut:    0.8,
			PanStep:    4,
			CellWidth:  5,
			CellHeight: 10,
			Grid:       100,
		},
		Export: ExportConfig{Scale: 4},
		Editor: EditorConfig{Confirmations: true, Demo: true},
	}
}

// Dir returns the nodegraph config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "nodegraph")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if strings.HasPrefix(cfg.Export.Directory, "~") {
		home, _ := os.UserHomeDir()
		cfg.Export.Directory = filepath.Join(home, strings.TrimPrefix(cfg.Export.Directory, "~"))
	}
	return cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks field constraints and the cross-field rule that a node
// header fits inside the default node height.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Node.Height > 0 && c.Node.HeaderHeight > c.Node.Height {
		return fmt.Errorf("invalid config: header_height %v exceeds height %v", c.Node.HeaderHeight, c.Node.Height)
	}
	return nil
}

// Level maps LogLevel onto slog.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

// ExportPath places filename in the export directory, creating it.
func (c *Config) ExportPath(filename string) (string, error) {
	if c.Export.Directory == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.Export.Directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return filepath.Join(c.Export.Directory, filename), nil
}
