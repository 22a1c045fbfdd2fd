package scroll

import (
	"math"

	"github.com/agiangrant/listview/retained"
)

const (
	// inertiaStopSpeed is the speed under which inertia snaps to rest.
	inertiaStopSpeed = 100
	// elasticStopSpeed is the spring speed under which the elastic pull stops.
	elasticStopSpeed = 10
	// rubberStiffness shapes the overscroll resistance curve.
	rubberStiffness = 0.55
	// dragVelocityBlend weights the newest drag sample in the velocity estimate.
	dragVelocityBlend = 0.8
)

// ============================================================================
// Boundaries
// ============================================================================

// CalculateOffset returns the correction that would bring the content back
// inside the view after moving it by delta. A whole list shorter than the
// view is treated as filling it from the anchor edge; a partial window that
// is short only corrects toward its gap. Unrestricted movement never
// corrects.
func (r *Region) CalculateOffset(delta float32) float32 {
	if r.opts.Movement == MovementUnrestricted {
		return 0
	}
	view := r.ViewSize()
	lo, hi := r.contentSpan()
	lo += delta
	hi += delta
	if hi-lo < view && r.wholeList() {
		if r.opts.Direction.Reverse() {
			lo = hi - view
		} else {
			hi = lo + view
		}
	}
	if lo > 0 {
		return -lo
	}
	if hi < view {
		return view - hi
	}
	return 0
}

// wholeList reports whether every item of a non-loop list is live.
func (r *Region) wholeList() bool {
	return !r.opts.Loop && r.itemStart == 0 && r.itemEnd == r.total
}

// RubberDelta is the displayed overstretch for an overscroll of x in a view
// of size view. It grows sub-linearly and never reaches view.
func RubberDelta(x, view float32) float32 {
	if view <= 0 {
		return 0
	}
	a := float32(math.Abs(float64(x)))
	d := (1 - 1/(a*rubberStiffness/view+1)) * view
	if x < 0 {
		return -d
	}
	return d
}

// atEdge reports whether the window has reached the list boundary that a
// non-zero offset corrects toward. Indices ascend along the axis in every
// direction, so a gap before the content is the start of the list.
func (r *Region) atEdge(offset float32) bool {
	if r.opts.Loop {
		return false
	}
	if offset < 0 {
		return r.itemStart == 0
	}
	return r.itemEnd == r.total
}

// edgeOffset is CalculateOffset limited to the list edges.
func (r *Region) edgeOffset(delta float32) float32 {
	if offset := r.CalculateOffset(delta); offset != 0 && r.atEdge(offset) {
		return offset
	}
	return 0
}

// ============================================================================
// Drag
// ============================================================================

// HandleDragStart implements retained.DragReceiver.
func (r *Region) HandleDragStart(e *retained.PointerEvent) {
	if e.Button != retained.MouseButtonLeft || !r.opts.EnableDrag {
		return
	}
	if r.move.custom {
		r.StopMovement(0, false)
	}
	r.dragStartPos = r.pos
	r.pointerStart = e.Position
	r.dragging = true
	r.updateSnap = false
	r.snap.reset()
	e.SetHandled()
}

// HandleDrag implements retained.DragReceiver.
func (r *Region) HandleDrag(e *retained.PointerEvent) {
	if e.Button != retained.MouseButtonLeft || !r.dragging {
		return
	}
	delta := e.Position.Sub(r.pointerStart).Get(r.axis())
	position := r.dragStartPos + delta
	// Short of a list edge the gap is only window the update will fill.
	if offset := r.CalculateOffset(position - r.pos); offset != 0 && r.atEdge(offset) {
		position += offset
		position -= RubberDelta(offset, r.ViewSize()) * r.opts.RubberScale
	}
	r.setContentPosition(position, true)
	e.SetHandled()
}

// HandleDragEnd implements retained.DragReceiver.
func (r *Region) HandleDragEnd(e *retained.PointerEvent) {
	if e.Button != retained.MouseButtonLeft || !r.dragging {
		return
	}
	if abs(r.velocity) < snapVelocityThreshold {
		r.updateSnap = true
	}
	r.dragging = false
	e.SetHandled()
}

// HandleScroll implements retained.DragReceiver for wheel input. A positive
// wheel y scrolls toward earlier content, as wheels report it.
func (r *Region) HandleScroll(e *retained.PointerEvent) {
	if !r.opts.EnableDrag || r.move.custom {
		return
	}
	d := e.Delta.Y
	if r.opts.Direction.Horizontal() && abs(e.Delta.X) > abs(e.Delta.Y) {
		d = -e.Delta.X
	}
	if d == 0 {
		return
	}
	position := r.pos + d*r.opts.ScrollSensitivity
	if r.opts.Movement == MovementClamped {
		position += r.edgeOffset(position - r.pos)
	}
	r.setContentPosition(position, true)
	e.SetHandled()
}

// ============================================================================
// Inertia And Elastic Return
// ============================================================================

func (r *Region) tickPhysics(dt float32) {
	r.updateSnapMove(dt, false)
	r.updateScrollbarVisibility()
	offset := r.CalculateOffset(0)

	if !r.dragging && (offset != 0 || r.velocity != 0) {
		position := r.pos
		switch {
		case r.opts.Movement == MovementElastic && abs(offset) > 1 && r.atEdge(offset):
			var speed float32
			position = retained.SmoothDamp(r.pos, r.pos+offset, &speed, r.opts.Elasticity, 0, dt)
			if abs(speed) < elasticStopSpeed {
				speed = 0
			}
			r.velocity = speed
		case r.opts.Inertia:
			r.lastVelocity = r.velocity
			r.velocity = r.decelerate(r.velocity, dt)
			if abs(r.velocity) < inertiaStopSpeed {
				r.velocity = 0
				r.lastVelocity = 0
			}
			position += r.velocity * dt
		default:
			r.velocity = 0
			r.lastVelocity = 0
		}

		switch {
		case r.opts.Movement == MovementClamped:
			position += r.edgeOffset(position - r.pos)
		case r.opts.Movement == MovementElastic && r.velocity == 0 && offset != 0 && abs(offset) <= 1 && r.atEdge(offset):
			// Sub-unit residue the spring no longer resolves.
			position = r.pos + offset
		}
		r.setContentPosition(position, true)
	}

	if r.dragging && r.opts.Inertia {
		sample := (r.pos - r.prevPos) / dt
		r.velocity = retained.Lerp(r.velocity, sample, dragVelocityBlend)
		r.lastVelocity = r.velocity
	}
	r.publish(offset)
}

// decelerate applies one frame of inertia decay. Faster content decays
// more gently so a fling carries.
func (r *Region) decelerate(speed, dt float32) float32 {
	if r.opts.Deceleration != nil {
		out := speed
		r.safely("Deceleration", -1, func() {
			out = r.opts.Deceleration(speed, r.opts.DecelerationRate, r.opts.SlowDownCoefficient)
		})
		return out
	}
	k := float32(4)
	switch s := abs(speed); {
	case s > 20000:
		k = 1
	case s > 5000:
		k = 2
	}
	return speed * pow(r.opts.DecelerationRate, dt*k)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

func sign(v float32) float32 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
