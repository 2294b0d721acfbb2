// Package config loads the YAML run configuration for portalgrid and
// validates it.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete run configuration.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after Validate.
type Config struct {
	// Grid selects the generated input grid.
	Grid GridConfig `json:"grid" yaml:"grid"`

	// Portal holds the decomposition parameters.
	Portal PortalConfig `json:"portal" yaml:"portal"`

	// Output lists the debug images to write. Empty paths are skipped.
	Output OutputConfig `json:"output" yaml:"output"`

	// Route optionally searches between two cells after the build.
	Route RouteConfig `json:"route" yaml:"route"`

	// Log configures the process logger.
	Log LogConfig `json:"log" yaml:"log"`
}

// Size limits for generated grids and rendered images.
const (
	MaxGridSide  = 4096
	MaxImageSide = 16384
)

// GridConfig describes a seeded random grid of at most MaxGridSide cells a side.
type GridConfig struct {
	Width  int   `json:"width" yaml:"width" validate:"gte=0,lte=4096"`
	Height int   `json:"height" yaml:"height" validate:"gte=0,lte=4096"`
	Seed   int64 `json:"seed" yaml:"seed"`
}

// PortalConfig holds the decomposition parameters.
type PortalConfig struct {
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Growth    string  `json:"growth" yaml:"growth" validate:"oneof=stop clip"`
}

// OutputConfig lists the debug images.
type OutputConfig struct {
	Passable string `json:"passable" yaml:"passable"`
	Graph    string `json:"graph" yaml:"graph"`
	Scale    int    `json:"scale" yaml:"scale" validate:"gte=1,lte=64"`
}

// RouteConfig picks the start and finish cells.
type RouteConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	From     [2]int `json:"from" yaml:"from"`
	To       [2]int `json:"to" yaml:"to"`
	Weighted bool   `json:"weighted" yaml:"weighted"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" validate:"oneof=text json"`
}

// Default returns the stock run: a 100×100 grid seeded with 1029382,
// threshold 0.8, passable.png at scale 1 and graph_scaled.png at scale 12.
func Default() Config {
	return Config{
		Grid:   GridConfig{Width: 100, Height: 100, Seed: 1029382},
		Portal: PortalConfig{Threshold: 0.8, Growth: "stop"},
		Output: OutputConfig{Passable: "passable.png", Graph: "graph_scaled.png", Scale: 12},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path over Default and validates the result.
// Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags plus the rules tags cannot express: a finite
// threshold and route endpoints inside the grid.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if math.IsNaN(c.Portal.Threshold) || math.IsInf(c.Portal.Threshold, 0) {
		return fmt.Errorf("%w: threshold must be finite, got %v", ErrInvalid, c.Portal.Threshold)
	}
	if c.Output.Graph != "" {
		side := max(c.Grid.Width, c.Grid.Height) * c.Output.Scale
		if side > MaxImageSide {
			return fmt.Errorf("%w: graph image side %d px exceeds %d, lower output.scale",
				ErrInvalid, side, MaxImageSide)
		}
	}
	if c.Route.Enabled {
		ends := []struct {
			name string
			p    [2]int
		}{{"from", c.Route.From}, {"to", c.Route.To}}
		for _, e := range ends {
			if e.p[0] < 0 || e.p[0] >= c.Grid.Width || e.p[1] < 0 || e.p[1] >= c.Grid.Height {
				return fmt.Errorf("%w: route.%s %v outside %dx%d grid", ErrInvalid, e.name, e.p, c.Grid.Width, c.Grid.Height)
			}
		}
	}
	return nil
}
