// Package config loads the YAML settings file shared by both frontends.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/appengine-ltd/minimap/internal/minimap"
	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

type Minimap struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	BorderColor string  `yaml:"border_color"`
	Panning     *bool   `yaml:"panning"`
	Corner      string  `yaml:"corner"`
	Margin      float64 `yaml:"margin"`
}

type Viewport struct {
	MinScale float64 `yaml:"min_scale"`
	MaxScale float64 `yaml:"max_scale"`
	ZoomStep float64 `yaml:"zoom_step"`
}

type Terrain struct {
	Seed     int64   `yaml:"seed"`
	Columns  int     `yaml:"columns"`
	Rows     int     `yaml:"rows"`
	CellSize float64 `yaml:"cell_size"`
}

// Terminal overrides the minimap box for the terminal frontend, measured in
// half-block pixels.
type Terminal struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Config struct {
	Minimap  Minimap  `yaml:"minimap"`
	Viewport Viewport `yaml:"viewport"`
	Terrain  Terrain  `yaml:"terrain"`
	Terminal Terminal `yaml:"terminal"`
}

func Default() Config {
	panning := true
	return Config{
		Minimap: Minimap{
			Width:       minimap.DefaultWidth,
			Height:      minimap.DefaultHeight,
			BorderColor: minimap.DefaultBorderColor,
			Panning:     &panning,
			Corner:      minimap.TopRight.String(),
			Margin:      16,
		},
		Viewport: Viewport{
			MinScale: 0.1,
			MaxScale: 8,
			ZoomStep: 1.15,
		},
		Terrain: Terrain{
			Seed:     20240611,
			Columns:  240,
			Rows:     160,
			CellSize: 12,
		},
		Terminal: Terminal{
			Width:  48,
			Height: 32,
		},
	}
}

// DefaultPath is config.yaml under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", errors.New("config directory not found")
	}
	return filepath.Join(dir, "minimap", fileName), nil
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults, rejecting unknown keys and invalid
// values.
func Parse(data []byte) (Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Config{}, err
	}
	cfg := Default()
	if len(root.Content) == 0 {
		return cfg, nil
	}
	if err := checkKeys(root.Content[0]); err != nil {
		return Config{}, err
	}
	if err := root.Content[0].Decode(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Minimap.Panning == nil {
		panning := true
		cfg.Minimap.Panning = &panning
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Minimap.Width <= 0 || c.Minimap.Height <= 0 {
		return fmt.Errorf("minimap: width and height must be positive, got %vx%v", c.Minimap.Width, c.Minimap.Height)
	}
	if c.Minimap.Margin < 0 {
		return fmt.Errorf("minimap: margin must not be negative, got %v", c.Minimap.Margin)
	}
	if _, err := ParseColor(c.Minimap.BorderColor); err != nil {
		return fmt.Errorf("minimap: border_color: %w", err)
	}
	if _, err := minimap.ParseCorner(c.Minimap.Corner); err != nil {
		return fmt.Errorf("minimap: %w", err)
	}
	if c.Viewport.MinScale <= 0 || c.Viewport.MaxScale < c.Viewport.MinScale {
		return fmt.Errorf("viewport: need 0 < min_scale <= max_scale, got %v..%v", c.Viewport.MinScale, c.Viewport.MaxScale)
	}
	if c.Viewport.ZoomStep <= 1 {
		return fmt.Errorf("viewport: zoom_step must be greater than 1, got %v", c.Viewport.ZoomStep)
	}
	if c.Terrain.Columns <= 0 || c.Terrain.Rows <= 0 || c.Terrain.CellSize <= 0 {
		return fmt.Errorf("terrain: columns, rows and cell_size must be positive")
	}
	if c.Terminal.Width <= 0 || c.Terminal.Height <= 0 {
		return fmt.Errorf("terminal: width and height must be positive, got %vx%v", c.Terminal.Width, c.Terminal.Height)
	}
	return nil
}

// Save writes cfg atomically: a temp file in the same directory is renamed
// over path.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	cleanup = false
	return nil
}

func (c Config) panning() bool {
	return c.Minimap.Panning == nil || *c.Minimap.Panning
}

// MinimapOptions is the minimap configuration for the window frontend.
func (c Config) MinimapOptions() minimap.Options {
	return minimap.Options{
		Width:       c.Minimap.Width,
		Height:      c.Minimap.Height,
		BorderColor: c.Minimap.BorderColor,
		Panning:     c.panning(),
	}
}

// TerminalOptions is MinimapOptions with the terminal box size.
func (c Config) TerminalOptions() minimap.Options {
	opts := c.MinimapOptions()
	opts.Width = c.Terminal.Width
	opts.Height = c.Terminal.Height
	return opts
}

func (c Config) Corner() minimap.Corner {
	corner, _ := minimap.ParseCorner(c.Minimap.Corner)
	return corner
}
