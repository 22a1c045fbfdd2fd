package pool

import "errors"

// Mode controls how a pool grows once every cached instance is in use.
// Positive values are a custom fixed increment.
type Mode int

const (
	// ModeRecovery reclaims an in-use instance in round-robin order instead of growing.
	ModeRecovery Mode = -2
	// ModeMultiple doubles the capacity (minimum 1).
	ModeMultiple Mode = -1
	// ModeAdd grows by the pool's original count (minimum 1).
	ModeAdd Mode = 0
)

// String returns a readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeRecovery:
		return "recovery"
	case ModeMultiple:
		return "multiple"
	case ModeAdd:
		return "add"
	default:
		if m > 0 {
			return "increment"
		}
		return "unknown"
	}
}

// ============================================================================
// Errors
// ============================================================================

var (
	// ErrValueType is returned when a pool is requested for a non-reference type.
	ErrValueType = errors.New("pool: value types can not be pooled")

	// ErrNegativeCount is returned when a pool is created with a negative count.
	ErrNegativeCount = errors.New("pool: count must not be negative")

	// ErrUnsupported is returned when no builder or clonable template can build an instance.
	ErrUnsupported = errors.New("pool: type can not support build by pool")

	// ErrPoolStarved is returned by Spawn in recovery mode when no slot can be reclaimed.
	ErrPoolStarved = errors.New("pool: no reclaimable instance")

	// ErrModified is returned by Each when the pool is rebuilt or destroyed mid-iteration.
	ErrModified = errors.New("pool: object pool was modified during enumeration")

	// ErrClosed is returned by registry operations after Close.
	ErrClosed = errors.New("pool: registry closed")
)
