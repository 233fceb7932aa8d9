// Package config loads hexview settings from .hexview/config.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/hexview/pkg/content"
	"github.com/Dicklesworthstone/hexview/pkg/geom"
)

// DefaultPath is the config file location relative to the content directory.
const DefaultPath = ".hexview/config.yaml"

// Config holds the user-tunable settings. Zero values in the file keep
// the defaults.
type Config struct {
	// Rows is the number of honeycomb rows.
	Rows int `yaml:"rows"`

	// CellWidth and CellHeight give the hexagon cell size in layout units.
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`

	// MaxPanels caps how many documents are loaded.
	MaxPanels int `yaml:"max_panels"`

	// Theme is "dark" or "light".
	Theme string `yaml:"theme"`

	// Snapshot, when set, is written after setup. A comma separated list
	// writes several files.
	Snapshot string `yaml:"snapshot"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Rows:       3,
		CellWidth:  250,
		CellHeight: 250,
		MaxPanels:  content.MaxDocuments,
		Theme:      "dark",
	}
}

// PathIn returns the config path for a content directory.
func PathIn(dir string) string {
	return filepath.Join(dir, DefaultPath)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.merge(file)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.Rows != 0 {
		c.Rows = o.Rows
	}
	if o.CellWidth != 0 {
		c.CellWidth = o.CellWidth
	}
	if o.CellHeight != 0 {
		c.CellHeight = o.CellHeight
	}
	if o.MaxPanels != 0 {
		c.MaxPanels = o.MaxPanels
	}
	if o.Theme != "" {
		c.Theme = o.Theme
	}
	if o.Snapshot != "" {
		c.Snapshot = o.Snapshot
	}
}

// Validate rejects settings the layout cannot use.
func (c Config) Validate() error {
	switch {
	case c.Rows < 1:
		return &geom.ConfigError{Field: "rows", Reason: fmt.Sprintf("must be positive, got %d", c.Rows)}
	case c.CellWidth <= 0 || c.CellHeight <= 0:
		return &geom.ConfigError{
			Field:  "cell size",
			Reason: fmt.Sprintf("must be positive, got %gx%g", c.CellWidth, c.CellHeight),
		}
	case c.MaxPanels < 1:
		return &geom.ConfigError{Field: "max_panels", Reason: fmt.Sprintf("must be positive, got %d", c.MaxPanels)}
	case c.Theme != "dark" && c.Theme != "light":
		return &geom.ConfigError{Field: "theme", Reason: fmt.Sprintf("unknown theme %q", c.Theme)}
	}
	return nil
}

// CellSize returns the hexagon cell size.
func (c Config) CellSize() geom.Size {
	return geom.Size{Width: c.CellWidth, Height: c.CellHeight}
}

// Layout builds the placement config for count panels in a viewport.
func (c Config) Layout(count int, viewport geom.Size) geom.Config {
	return geom.Config{
		Count:        count,
		Rows:         c.Rows,
		CellSize:     c.CellSize(),
		ViewportSize: viewport,
	}
}
