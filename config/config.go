// Package config loads and saves listview.toml, the configuration of a
// scroll region and the view that hosts it.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/agiangrant/listview/retained"
	"github.com/agiangrant/listview/scroll"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the default configuration file name.
const FileName = "listview.toml"

// Config represents the listview.toml configuration file
type Config struct {
	List    ListConfig    `toml:"list"`
	Physics PhysicsConfig `toml:"physics"`
	Snap    SnapConfig    `toml:"snap"`
	Item    ItemConfig    `toml:"item"`
	View    ViewConfig    `toml:"view"`
}

type ListConfig struct {
	TotalCount int    `toml:"total_count"`
	Loop       bool   `toml:"loop"`
	Direction  string `toml:"direction"`
	Movement   string `toml:"movement"`
	Bounce     string `toml:"bounce"`
	// Items per line; above 1 makes a grid
	CellCount int `toml:"cell_count"`
	// Scrollbar visibility policy
	Scrollbar string `toml:"scrollbar"`
}

type PhysicsConfig struct {
	Inertia             bool    `toml:"inertia"`
	DecelerationRate    float32 `toml:"deceleration_rate"`
	SlowDownCoefficient float32 `toml:"slow_down_coefficient"`
	Elasticity          float32 `toml:"elasticity"`
	RubberScale         float32 `toml:"rubber_scale"`
	ScrollSensitivity   float32 `toml:"scroll_sensitivity"`
}

type SnapConfig struct {
	Enable         bool    `toml:"enable"`
	SmoothDumpRate float32 `toml:"smooth_dump_rate"`
}

type ItemConfig struct {
	// Main-axis size of the default template
	Size float32 `toml:"size"`
	// Cross-axis size; zero fills the view
	CrossSize float32 `toml:"cross_size"`
	Spacing   float32 `toml:"spacing"`
}

type ViewConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	d := scroll.DefaultOptions()
	return Config{
		List: ListConfig{
			TotalCount: 100,
			Direction:  d.Direction.String(),
			Movement:   d.Movement.String(),
			Bounce:     d.Bounce.String(),
			CellCount:  d.CellCount,
			Scrollbar:  d.ScrollbarVisibility.String(),
		},
		Physics: PhysicsConfig{
			Inertia:             d.Inertia,
			DecelerationRate:    d.DecelerationRate,
			SlowDownCoefficient: d.SlowDownCoefficient,
			Elasticity:          d.Elasticity,
			RubberScale:         d.RubberScale,
			ScrollSensitivity:   d.ScrollSensitivity,
		},
		Snap: SnapConfig{
			SmoothDumpRate: d.SmoothDumpRate,
		},
		Item: ItemConfig{
			Size: 220,
		},
		View: ViewConfig{
			Width:  400,
			Height: 660,
		},
	}
}

// Load loads the configuration at path over the defaults.
// If the file doesn't exist, returns default config
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Validate checks the enumerated names and sizes.
func (c Config) Validate() error {
	if _, err := c.Options(); err != nil {
		return err
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		return fmt.Errorf("%w: view %vx%v", scroll.ErrInvalidConfig, c.View.Width, c.View.Height)
	}
	if c.Item.Size <= 0 {
		return fmt.Errorf("%w: item size %v", scroll.ErrInvalidConfig, c.Item.Size)
	}
	return nil
}

// Options converts the configuration into region options. Rates are clamped
// by New. The template and host hooks are left for the caller.
func (c Config) Options() (scroll.Options, error) {
	o := scroll.DefaultOptions()

	dir, err := scroll.ParseDirection(c.List.Direction)
	if err != nil {
		return o, err
	}
	movement, err := scroll.ParseMovement(c.List.Movement)
	if err != nil {
		return o, err
	}
	bounce, err := scroll.ParseBounce(c.List.Bounce)
	if err != nil {
		return o, err
	}
	bar, err := scroll.ParseScrollbarVisibility(c.List.Scrollbar)
	if err != nil {
		return o, err
	}
	if c.List.TotalCount < 0 {
		return o, fmt.Errorf("%w: total count %d", scroll.ErrInvalidConfig, c.List.TotalCount)
	}

	o.TotalCount = c.List.TotalCount
	o.Loop = c.List.Loop
	o.Direction = dir
	o.Movement = movement
	o.Bounce = bounce
	o.CellCount = max(1, c.List.CellCount)
	o.ScrollbarVisibility = bar
	o.Spacing = c.Item.Spacing

	o.Inertia = c.Physics.Inertia
	o.DecelerationRate = c.Physics.DecelerationRate
	o.SlowDownCoefficient = c.Physics.SlowDownCoefficient
	o.Elasticity = c.Physics.Elasticity
	o.RubberScale = c.Physics.RubberScale
	o.ScrollSensitivity = c.Physics.ScrollSensitivity

	o.EnableSnap = c.Snap.Enable
	o.SmoothDumpRate = c.Snap.SmoothDumpRate

	if o.CellCount > 1 {
		o.CellSize = c.CellSize()
	}
	return o, nil
}

// ItemSize returns the default template size for the configured axis.
func (c Config) ItemSize() retained.Vec2 {
	dir, _ := scroll.ParseDirection(c.List.Direction)
	cross := c.Item.CrossSize
	axis := dir.Axis()
	if cross <= 0 {
		cross = c.viewSize().Get(crossAxis(axis))
	}
	return retained.Vec2{}.With(axis, c.Item.Size).With(crossAxis(axis), cross)
}

// CellSize returns the grid cell size: the configured size along the scroll
// axis and an equal share of the view across it.
func (c Config) CellSize() retained.Vec2 {
	dir, _ := scroll.ParseDirection(c.List.Direction)
	axis := dir.Axis()
	cross := c.Item.CrossSize
	if cross <= 0 {
		cross = c.viewSize().Get(crossAxis(axis)) / float32(max(1, c.List.CellCount))
	}
	return retained.Vec2{}.With(axis, c.Item.Size).With(crossAxis(axis), cross)
}

func (c Config) viewSize() retained.Vec2 {
	return retained.Vec2{X: c.View.Width, Y: c.View.Height}
}

func crossAxis(a retained.Axis) retained.Axis {
	if a == retained.AxisY {
		return retained.AxisX
	}
	return retained.AxisY
}
