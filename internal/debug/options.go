package debug

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Point is a world position marked in debug drawing.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// IsZero reports whether the point is unset.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Options are developer switches read once at startup. The game reads them
// every frame but never writes them.
type Options struct {
	GodMode             bool    `yaml:"god_mode"              env:"SOL_GOD_MODE"`
	GameSpeedMultiplier float32 `yaml:"game_speed_multiplier" env:"SOL_GAME_SPEED_MULTIPLIER"`
	GridSize            float32 `yaml:"grid_size"             env:"SOL_GRID_SIZE"`
	ZoomOverride        float32 `yaml:"zoom_override"         env:"SOL_ZOOM_OVERRIDE"`
	NoSound             bool    `yaml:"no_sound"              env:"SOL_NO_SOUND"`

	DebugPoints []Point `yaml:"debug_points"`
}

// Default returns options with every switch off and normal game speed.
func Default() *Options {
	return &Options{GameSpeedMultiplier: 1}
}

// Load reads options from a YAML file, when path is set, then applies any
// SOL_* environment overrides.
func Load(path string) (*Options, error) {
	opts := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading debug options: %w", err)
		}
		if err := yaml.Unmarshal(raw, opts); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := env.Parse(opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (o *Options) Validate() error {
	if o.GameSpeedMultiplier <= 0 {
		return fmt.Errorf("game_speed_multiplier must be positive, got %v", o.GameSpeedMultiplier)
	}
	if o.GridSize < 0 {
		return fmt.Errorf("grid_size must not be negative")
	}
	return nil
}
