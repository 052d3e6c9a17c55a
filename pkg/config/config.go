// Package config loads the treeflow configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/treeflow/config.toml
// (falling back to ~/.config). A missing file yields [Default]; keys that
// are absent keep their default values.
//
//	[canvas]
//	cell_width = 10
//	cell_height = 20
//	background_gap = 16
//	background_color = "#f0f0f0"
//	controls = "bottom-left"
//
//	[render]
//	width = 960
//	height = 540
//	format = "svg"
//
//	[serve]
//	addr = "127.0.0.1:8037"
//	reload = false
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/flow"
)

// Config holds treeflow configuration.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Render RenderConfig `toml:"render"`
	Serve  ServeConfig  `toml:"serve"`
}

// CanvasConfig controls the interactive editor.
type CanvasConfig struct {
	CellWidth       float64 `toml:"cell_width"`  // pixels per terminal column
	CellHeight      float64 `toml:"cell_height"` // pixels per terminal row
	BackgroundGap   float64 `toml:"background_gap"`
	BackgroundColor string  `toml:"background_color"`
	Controls        string  `toml:"controls"` // "top-left", "top-right", "bottom-left", "bottom-right"
}

// RenderConfig controls the render command and the preview server.
type RenderConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Format string `toml:"format"` // "svg", "dot", "graphviz", "json"
}

// ServeConfig controls the preview server.
type ServeConfig struct {
	Addr   string `toml:"addr"`
	Reload bool   `toml:"reload"`
}

// Render formats.
const (
	FormatSVG      = "svg"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
	FormatJSON     = "json"
)

// Formats lists the accepted render formats.
var Formats = []string{FormatSVG, FormatDOT, FormatGraphviz, FormatJSON}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			CellWidth:       10,
			CellHeight:      20,
			BackgroundGap:   flow.DefaultBackground.Gap,
			BackgroundColor: flow.DefaultBackground.Color,
			Controls:        string(flow.BottomLeft),
		},
		Render: RenderConfig{Width: 960, Height: 540, Format: FormatSVG},
		Serve:  ServeConfig{Addr: "127.0.0.1:8037"},
	}
}

// Dir returns the treeflow config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "treeflow")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config at path, or at [Path] when path is empty. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, or to [Path] when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create config dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	if c.Canvas.CellWidth <= 0 || c.Canvas.CellHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas cell size must be positive (got %gx%g)", c.Canvas.CellWidth, c.Canvas.CellHeight)
	}
	if c.Canvas.Controls != "" && c.Canvas.ControlsOverlay().Corner() != flow.Placement(c.Canvas.Controls) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown controls placement %q", c.Canvas.Controls)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render size must be positive (got %dx%d)", c.Render.Width, c.Render.Height)
	}
	if err := errors.ValidateFormat(c.Render.Format, Formats...); err != nil {
		return err
	}
	return nil
}

// Background returns the canvas background, defaults filled in.
func (c CanvasConfig) Background() flow.Background {
	return flow.Background{Color: c.BackgroundColor, Gap: c.BackgroundGap}.WithDefaults()
}

// ControlsOverlay returns the canvas controls.
func (c CanvasConfig) ControlsOverlay() flow.Controls {
	return flow.Controls{Placement: flow.Placement(c.Controls)}
}
