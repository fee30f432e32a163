// Package config loads the editor configuration from a TOML file, falling
// back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the editor settings.
type Config struct {
	// HistoryLimit caps the undo stack depth.
	HistoryLimit int `toml:"history_limit"`

	// CellWidth and CellHeight map canvas units to terminal cells. A cell
	// covers CellWidth x CellHeight canvas units, roughly matching the
	// pixel aspect of a terminal glyph.
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`

	// DoubleClickMs is the window in which two presses count as a
	// double-click.
	DoubleClickMs int `toml:"double_click_ms"`

	Export ExportConfig `toml:"export"`
}

// ExportConfig holds raster export settings.
type ExportConfig struct {
	Scale   float64 `toml:"scale"`
	Padding float64 `toml:"padding"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HistoryLimit:  500,
		CellWidth:     8,
		CellHeight:    16,
		DoubleClickMs: 400,
		Export: ExportConfig{
			Scale:   1,
			Padding: 40,
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "erdraw", "config.toml")
}

// Load reads a TOML config file, layering it over the defaults. A missing
// file (or empty path) returns the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.sanitize()
	return cfg, nil
}

// sanitize clamps nonsense values back to the defaults.
func (c *Config) sanitize() {
	def := Default()
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = def.HistoryLimit
	}
	if c.CellWidth <= 0 {
		c.CellWidth = def.CellWidth
	}
	if c.CellHeight <= 0 {
		c.CellHeight = def.CellHeight
	}
	if c.DoubleClickMs <= 0 {
		c.DoubleClickMs = def.DoubleClickMs
	}
	if c.Export.Scale <= 0 {
		c.Export.Scale = def.Export.Scale
	}
	if c.Export.Padding < 0 {
		c.Export.Padding = def.Export.Padding
	}
}
