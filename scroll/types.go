// Package scroll implements a virtualized, recycling list/grid region: only
// enough item views to cover the viewport plus a small overscan are ever
// live, and they are recycled through named pools as content moves.
//
// A Region is driven by its host once per frame through Tick. Within a frame
// physics runs first, then the window of live items is updated, then newly
// entered items are bound through ItemSource.FillItemData.
package scroll

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agiangrant/listview/retained"
)

// ============================================================================
// Direction
// ============================================================================

// Direction is the scroll axis and the edge the list is anchored to.
type Direction uint8

const (
	// TopToBottom is a vertical list whose first item sits at the top.
	TopToBottom Direction = iota
	// BottomToTop is a vertical list anchored at the bottom (chat log order).
	BottomToTop
	// LeftToRight is a horizontal list whose first item sits at the left.
	LeftToRight
	// RightToLeft is a horizontal list anchored at the right.
	RightToLeft
)

// Horizontal reports whether the list scrolls along the x axis.
func (d Direction) Horizontal() bool {
	return d == LeftToRight || d == RightToLeft
}

// Reverse reports whether the list is anchored at the far edge of its axis.
func (d Direction) Reverse() bool {
	return d == BottomToTop || d == RightToLeft
}

// Axis returns the main scroll axis.
func (d Direction) Axis() retained.Axis {
	if d.Horizontal() {
		return retained.AxisX
	}
	return retained.AxisY
}

// String returns the config name of the direction.
func (d Direction) String() string {
	switch d {
	case TopToBottom:
		return "top-to-bottom"
	case BottomToTop:
		return "bottom-to-top"
	case LeftToRight:
		return "left-to-right"
	case RightToLeft:
		return "right-to-left"
	}
	return "unknown"
}

// ParseDirection parses a direction name as written by String.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "top-to-bottom", "vertical", "":
		return TopToBottom, nil
	case "bottom-to-top":
		return BottomToTop, nil
	case "left-to-right", "horizontal":
		return LeftToRight, nil
	case "right-to-left":
		return RightToLeft, nil
	}
	return 0, fmt.Errorf("%w: direction %q", ErrInvalidAxis, name)
}

// ============================================================================
// Movement
// ============================================================================

// MovementType selects what happens when content is moved past its bounds.
type MovementType uint8

const (
	// MovementElastic lets content overshoot and springs it back.
	MovementElastic MovementType = iota
	// MovementUnrestricted never corrects the content position.
	MovementUnrestricted
	// MovementClamped hard-limits content at its bounds outside of a drag.
	MovementClamped
)

// String returns the config name of the movement type.
func (m MovementType) String() string {
	switch m {
	case MovementElastic:
		return "elastic"
	case MovementUnrestricted:
		return "unrestricted"
	case MovementClamped:
		return "clamped"
	}
	return "unknown"
}

// ParseMovement parses a movement name as written by String.
func ParseMovement(name string) (MovementType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "elastic", "":
		return MovementElastic, nil
	case "unrestricted":
		return MovementUnrestricted, nil
	case "clamped":
		return MovementClamped, nil
	}
	return 0, fmt.Errorf("%w: movement %q", ErrInvalidConfig, name)
}

// MoveState is the phase of a programmatic move.
type MoveState uint8

const (
	StateStop MoveState = iota
	StatePause
	StateStartMove
	StateMoving
	StateEndMove
	StateMoveComplete
)

func (s MoveState) String() string {
	switch s {
	case StateStop:
		return "stop"
	case StatePause:
		return "pause"
	case StateStartMove:
		return "start-move"
	case StateMoving:
		return "moving"
	case StateEndMove:
		return "end-move"
	case StateMoveComplete:
		return "move-complete"
	}
	return "unknown"
}

// BounceType selects which built-in phases a programmatic move plays.
// Phases that are not played complete immediately unless replaced by a
// StartBouncer / MoveBouncer / EndBouncer.
type BounceType uint8

const (
	// BounceCustom plays neither the ramp-up nor the settle phase.
	BounceCustom BounceType = iota
	// BounceOnlyStart plays the ramp-up phase only.
	BounceOnlyStart
	// BounceOnlyEnd plays the settle phase only.
	BounceOnlyEnd
	// BounceBoth plays both phases.
	BounceBoth
)

func (b BounceType) String() string {
	switch b {
	case BounceCustom:
		return "custom"
	case BounceOnlyStart:
		return "only-start"
	case BounceOnlyEnd:
		return "only-end"
	case BounceBoth:
		return "both"
	}
	return "unknown"
}

// ParseBounce parses a bounce type name as written by String.
func ParseBounce(name string) (BounceType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "custom", "":
		return BounceCustom, nil
	case "only-start":
		return BounceOnlyStart, nil
	case "only-end":
		return BounceOnlyEnd, nil
	case "both":
		return BounceBoth, nil
	}
	return 0, fmt.Errorf("%w: bounce %q", ErrInvalidConfig, name)
}

func (b BounceType) playsStart() bool { return b == BounceBoth || b == BounceOnlyStart }
func (b BounceType) playsEnd() bool   { return b == BounceBoth || b == BounceOnlyEnd }

// ScrollbarVisibility controls when an attached scrollbar is shown.
type ScrollbarVisibility uint8

const (
	// ScrollbarPermanent always shows the scrollbar.
	ScrollbarPermanent ScrollbarVisibility = iota
	// ScrollbarAutoHide shows the scrollbar only while content exceeds the view.
	ScrollbarAutoHide
	// ScrollbarAutoHideAndExpand hides like ScrollbarAutoHide. Hosts grow the
	// view into the freed space when the bar is hidden.
	ScrollbarAutoHideAndExpand
)

func (v ScrollbarVisibility) String() string {
	switch v {
	case ScrollbarPermanent:
		return "permanent"
	case ScrollbarAutoHide:
		return "auto-hide"
	case ScrollbarAutoHideAndExpand:
		return "auto-hide-and-expand"
	}
	return "unknown"
}

// ParseScrollbarVisibility parses a visibility name as written by String.
func ParseScrollbarVisibility(name string) (ScrollbarVisibility, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "permanent":
		return ScrollbarPermanent, nil
	case "auto-hide", "":
		return ScrollbarAutoHide, nil
	case "auto-hide-and-expand":
		return ScrollbarAutoHideAndExpand, nil
	}
	return 0, fmt.Errorf("%w: scrollbar visibility %q", ErrInvalidConfig, name)
}

// ============================================================================
// Errors
// ============================================================================

var (
	// ErrNoContent is returned by New without a view or content node.
	ErrNoContent = errors.New("scroll: content node is required")

	// ErrNoSource is returned by New without an item source.
	ErrNoSource = errors.New("scroll: item source is required")

	// ErrNoTemplate is returned by New when no default template can be resolved
	// and the source does not pick templates per index.
	ErrNoTemplate = errors.New("scroll: item template is required")

	// ErrInvalidAxis is returned for an unknown direction.
	ErrInvalidAxis = errors.New("scroll: invalid axis")

	// ErrInvalidConfig is returned for out-of-domain options.
	ErrInvalidConfig = errors.New("scroll: invalid configuration")

	// ErrNoSize is logged when an unmeasured item has no size source.
	ErrNoSize = errors.New("scroll: no size for item")
)
