package scroll

import (
	"fmt"

	"github.com/agiangrant/listview/pool"
	"github.com/agiangrant/listview/retained"
	"github.com/rs/zerolog"
)

// DecelerationFunc replaces the built-in inertia decay. It receives the
// current speed and the region's rates and returns the new speed.
type DecelerationFunc func(speed, decelerationRate, slowDownCoefficient float32) float32

// Options configures a Region. Start from DefaultOptions.
type Options struct {
	TotalCount int
	Loop       bool
	Direction  Direction
	Movement   MovementType
	Bounce     BounceType

	// CellCount is the number of items per line. Values above 1 make a grid.
	CellCount int
	// Spacing is the gap between consecutive lines along the scroll axis.
	Spacing float32
	// CellSize fixes the grid cell size. Zero uses the template size.
	CellSize retained.Vec2

	Inertia             bool
	DecelerationRate    float32 // [0.05, 0.9]
	SlowDownCoefficient float32 // [0.1, 10]
	Elasticity          float32 // [0, 0.5], SmoothDamp time of the elastic spring
	RubberScale         float32
	ScrollSensitivity   float32
	Deceleration        DecelerationFunc

	EnableDrag     bool
	EnableSnap     bool
	SmoothDumpRate float32 // [0, 1], SmoothDamp time of a snap

	ScrollbarVisibility ScrollbarVisibility

	// Template is the default item template. TemplateName resolves one
	// through Loader when Template is nil.
	Template     *retained.Node
	TemplateName string
	Loader       retained.ResourceLoader

	Instantiator retained.Instantiator
	Layout       retained.Layout

	// Pools is a registry shared with other regions. Nil gives the region a
	// local registry that ClearCells(true) and Close tear down.
	Pools     *pool.Registry[*Item]
	PoolMode  pool.Mode
	PoolCount int

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// DefaultOptions returns the defaults of a vertical elastic list.
func DefaultOptions() Options {
	return Options{
		TotalCount:          0,
		Direction:           TopToBottom,
		Movement:            MovementElastic,
		Bounce:              BounceCustom,
		CellCount:           1,
		Inertia:             true,
		DecelerationRate:    0.3,
		SlowDownCoefficient: 2,
		Elasticity:          0.05,
		RubberScale:         1,
		ScrollSensitivity:   5,
		EnableDrag:          true,
		SmoothDumpRate:      0.1,
		ScrollbarVisibility: ScrollbarAutoHide,
		PoolCount:           4,
	}
}

// normalize validates o and clamps the rates into their domains.
func (o Options) normalize() (Options, error) {
	if o.Direction > RightToLeft {
		return o, fmt.Errorf("%w: direction %d", ErrInvalidAxis, o.Direction)
	}
	if o.Movement > MovementClamped {
		return o, fmt.Errorf("%w: movement %d", ErrInvalidConfig, o.Movement)
	}
	if o.Bounce > BounceBoth {
		return o, fmt.Errorf("%w: bounce %d", ErrInvalidConfig, o.Bounce)
	}
	if o.PoolMode == pool.ModeRecovery {
		// Live items refuse reclamation, so a recovery pool stops the window
		// from growing once PoolCount items are live.
		return o, fmt.Errorf("%w: pool mode %s", ErrInvalidConfig, o.PoolMode)
	}
	if o.TotalCount < 0 {
		return o, fmt.Errorf("%w: total count %d", ErrInvalidConfig, o.TotalCount)
	}
	if o.CellCount < 0 {
		return o, fmt.Errorf("%w: cell count %d", ErrInvalidConfig, o.CellCount)
	}
	if o.Spacing < 0 {
		return o, fmt.Errorf("%w: spacing %v", ErrInvalidConfig, o.Spacing)
	}
	o.CellCount = max(1, o.CellCount)
	o.DecelerationRate = retained.Clamp(o.DecelerationRate, 0.05, 0.9)
	o.SlowDownCoefficient = retained.Clamp(o.SlowDownCoefficient, 0.1, 10)
	o.Elasticity = retained.Clamp(o.Elasticity, 0, 0.5)
	o.SmoothDumpRate = retained.Clamp(o.SmoothDumpRate, 0, 1)
	if o.RubberScale <= 0 {
		o.RubberScale = 1
	}
	if o.ScrollSensitivity == 0 {
		o.ScrollSensitivity = 5
	}
	if o.PoolCount < 1 {
		o.PoolCount = 1
	}
	if o.Instantiator == nil {
		o.Instantiator = retained.CloneInstantiator{}
	}
	return o, nil
}
