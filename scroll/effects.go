package scroll

import (
	"time"

	"github.com/agiangrant/listview/retained"
)

const (
	// DefaultMoveSpeed is the ScrollToView speed used when none is given.
	DefaultMoveSpeed = 1000

	rampDuration     = 500 * time.Millisecond
	moveStopSpeed    = 10
	settleSmoothTime = 0.04
	// settleDecay is the per-second base of the arrival drift decay.
	settleDecay     = 0.1
	settleDecayRate = 15
	slowDownSlack   = 10
	nominalDT       = 1.0 / 60
)

// moveState is the bookkeeping of one programmatic move.
type moveState struct {
	custom bool
	state  MoveState
	resume MoveState

	index int
	dir   float32 // Sign of the content motion toward the target
	speed float32

	// decelerating traversal
	total float32
	slow  float32
	moved float32
	step  bool // Constant-speed traversal with an exact final step

	tempVelocity float32
	settling     bool

	startDone func()
	moveDone  func()
	endDone   func()

	tweens *retained.TweenRegistry
}

func once(fn func()) func() {
	done := false
	return func() {
		if done {
			return
		}
		done = true
		fn()
	}
}

// ============================================================================
// Commands
// ============================================================================

// ScrollToView brings the item at index into view. Without animation the
// window is refilled at index at once. Animated moves run the start, moving
// and end phases selected by the bounce type and fire exactly one
// StateMoveComplete. For loop lists index is a forward item count and must
// be positive. speed <= 0 uses DefaultMoveSpeed.
func (r *Region) ScrollToView(index int, animated bool, speed float32) {
	if !animated {
		r.FillCells(index)
		return
	}
	if r.opts.Loop && index <= 0 {
		r.log.Warn().Int("index", index).Msg("loop lists have no last index; scroll by a positive count")
		return
	}
	if speed <= 0 {
		speed = DefaultMoveSpeed
	}

	if r.opts.Loop {
		first := r.itemStart
		if it := r.GetFirstShow(); it != nil {
			first = it.index
		}
		r.move.index = first + index
	} else {
		if index < 0 {
			index = r.total
		}
		r.move.index = max(0, min(index, r.total-1))
	}
	if r.move.custom {
		// Retarget: the running phases are dropped and the move restarts.
		r.move.state = StateStop
	}
	r.move.custom = true
	r.move.speed = speed
	r.move.settling = false
	r.move.tweens.Clear()
	r.snap.reset()
	r.updateSnap = false

	if !r.safely("ScrollToView", r.move.index, r.startEffect) {
		r.StopMovement(3, true)
	}
}

// StopMovement interrupts a programmatic move. With playEndEffect and a
// bounce type that settles, the window is refilled offset items before the
// target and the settle phase plays; otherwise the move stops in place.
func (r *Region) StopMovement(offset int, playEndEffect bool) {
	r.move.tweens.Clear()
	if playEndEffect && r.opts.Bounce.playsEnd() {
		r.move.tempVelocity = r.velocity
		r.velocity = 0
		fill := r.move.index - offset
		if r.opts.Direction.Reverse() {
			fill = r.total - (r.move.index + offset) - 1
		}
		r.FillCells(fill)
		r.move.custom = true
		r.endEffect()
		return
	}

	r.move.custom = false
	r.move.settling = false
	r.move.startDone, r.move.moveDone, r.move.endDone = nil, nil, nil
	r.velocity = 0
	r.lastVelocity = 0
	r.setState(StateStop)
}

// ============================================================================
// Phases
// ============================================================================

func (r *Region) startEffect() {
	if r.move.state == StateStartMove || r.move.state == StateMoving {
		return
	}
	r.move.dir = r.directionTo(r.move.index)
	r.setState(StateStartMove)

	if r.startFx != nil {
		r.move.startDone = once(r.movingEffect)
		return
	}
	if r.opts.Bounce.playsStart() && r.move.dir != 0 {
		dir := r.move.dir
		done := once(r.movingEffect)
		r.move.tweens.Tween(0, r.move.speed).
			Duration(rampDuration).
			Easing(retained.EaseInExpo).
			OnUpdate(func(v float32) { r.velocity = dir * v }).
			OnComplete(done).
			Start()
		return
	}
	r.movingEffect()
}

func (r *Region) movingEffect() {
	r.setState(StateMoving)
	if r.moveFx != nil {
		r.move.moveDone = once(func() {
			r.move.tempVelocity = r.velocity
			r.velocity = 0
			r.endEffect()
		})
		return
	}

	r.move.dir = r.directionTo(r.move.index)
	if !r.opts.Bounce.playsStart() {
		r.move.step = true
		r.velocity = 0
		return
	}
	r.move.step = false
	dist, _ := r.targetDelta(r.move.index, r.move.dir)
	r.velocity = r.move.dir * r.move.speed
	r.move.slow = slowDownDistance(r.move.speed, r.opts.DecelerationRate, r.opts.SlowDownCoefficient, nominalDT)
	r.move.total = abs(dist)
	r.move.moved = 0
}

func (r *Region) endEffect() {
	r.setState(StateEndMove)
	if r.endFx != nil {
		r.move.endDone = once(r.moveComplete)
		return
	}
	if r.opts.Bounce.playsEnd() {
		r.move.settling = false
		return
	}
	r.moveComplete()
}

func (r *Region) moveComplete() {
	r.move.custom = false
	r.move.settling = false
	r.move.startDone, r.move.moveDone, r.move.endDone = nil, nil, nil
	r.velocity = 0
	r.lastVelocity = 0
	r.setContentPosition(retained.Ceil(r.pos), true)
	r.setState(StateMoveComplete)
}

// arrive ends the traversal with v as the arrival speed.
func (r *Region) arrive(v float32) {
	r.move.tempVelocity = v
	r.velocity = 0
	r.endEffect()
}

// ============================================================================
// Per-Frame Integration
// ============================================================================

func (r *Region) tickMove(dt float32) {
	switch r.move.state {
	case StateStartMove:
		if r.startFx != nil {
			if pos, ok := r.safeBounce("StartBounce", func() float32 {
				return r.startFx.StartBounce(r, r.velocity, r.move.startDone)
			}); ok {
				r.setContentPosition(pos, false)
			}
			return
		}
		r.rampTick(dt)

	case StateMoving:
		switch {
		case r.moveFx != nil:
			if pos, ok := r.safeBounce("MoveBounce", func() float32 {
				return r.moveFx.MoveBounce(r, r.velocity, r.move.moveDone)
			}); ok {
				r.setContentPosition(pos, true)
			}
		case r.move.step:
			r.stepTick(dt)
		default:
			r.movingTick(dt)
		}

	case StateEndMove:
		if r.endFx != nil {
			if pos, ok := r.safeBounce("EndBounce", func() float32 {
				return r.endFx.EndBounce(r, r.move.tempVelocity, r.move.endDone)
			}); ok {
				r.setContentPosition(pos, false)
			}
			return
		}
		r.settleTick(dt)
	}
}

// rampTick moves the content with the velocity the ramp tween sets.
func (r *Region) rampTick(dt float32) {
	if !r.canMove() {
		r.move.tweens.Clear()
		r.arrive(r.velocity)
		return
	}
	r.setContentPosition(r.pos+r.velocity*dt, true)
}

// movingTick travels at full speed and decays once the remaining distance
// falls inside the precomputed slow-down distance.
func (r *Region) movingTick(dt float32) {
	if !r.canMove() || r.velocity == 0 {
		r.arrive(r.velocity)
		return
	}
	d := r.velocity * dt
	r.move.moved += abs(d)
	if r.move.moved > r.move.total-r.move.slow+slowDownSlack {
		r.velocity *= pow(r.opts.DecelerationRate, dt*r.opts.SlowDownCoefficient)
		if abs(r.velocity) < moveStopSpeed {
			r.velocity = 0
		}
	}
	r.setContentPosition(r.pos+d, true)
}

// stepTick travels at constant speed and lands exactly on the target.
func (r *Region) stepTick(dt float32) {
	arrival := r.move.dir * r.move.speed
	if !r.canMove() {
		r.arrive(arrival)
		return
	}
	maxStep := r.move.speed * dt
	if dist, ok := r.liveDelta(r.move.index, r.move.dir); ok && abs(dist) <= maxStep {
		r.setContentPosition(r.pos+dist, false)
		r.arrive(arrival)
		return
	}
	r.setContentPosition(r.pos+r.move.dir*maxStep, true)
}

// settleTick lets the arrival speed drift out, then springs the content back
// onto the target or inside the bounds.
func (r *Region) settleTick(dt float32) {
	if !r.move.settling {
		tv := r.move.tempVelocity * pow(settleDecay, dt*settleDecayRate)
		if abs(tv) < inertiaStopSpeed {
			tv = 0
			r.move.settling = true
		}
		r.move.tempVelocity = tv
		r.setContentPosition(r.pos+tv*dt, true)
		if !r.move.settling {
			return
		}
	}

	offset := r.CalculateOffset(0)
	if offset == 0 {
		if d, ok := r.liveDelta(r.move.index, r.move.dir); ok {
			offset = d
		}
	}
	var speed float32
	pos := retained.SmoothDamp(r.pos, r.pos+offset, &speed, settleSmoothTime, 0, dt)
	r.setContentPosition(pos, true)
	if abs(speed) < moveStopSpeed {
		r.moveComplete()
	}
}

// ============================================================================
// Target Geometry
// ============================================================================

// directionTo returns the sign of the content motion that brings index into
// view, or 0 when it is fully visible.
func (r *Region) directionTo(index int) float32 {
	if it := r.liveItem(index); it != nil {
		lo, hi := r.itemSpan(it)
		switch {
		case hi > r.ViewSize():
			return -1
		case lo < 0:
			return 1
		}
		return 0
	}
	if index >= r.itemEnd {
		return -1
	}
	return 1
}

// targetDelta returns the content motion that aligns index with the view
// edge it is approached from. When dir < 0 the content travels toward the
// axis origin and the item's far edge meets the view end; otherwise its near
// edge meets the view start. exact is false when index is not live and the
// distance is estimated from line sizes.
func (r *Region) targetDelta(index int, dir float32) (delta float32, exact bool) {
	if d, ok := r.liveDelta(index, dir); ok {
		return d, true
	}
	view := r.ViewSize()
	lo, hi := r.contentSpan()
	cc := r.opts.CellCount
	if index >= r.itemEnd {
		dist := hi - view
		for line := floorDiv(r.itemEnd-1, cc) + 1; line <= floorDiv(index, cc); line++ {
			dist += r.lineSize(line * cc)
		}
		return -dist, false
	}
	dist := -lo
	for line := floorDiv(index, cc); line < floorDiv(r.itemStart, cc); line++ {
		dist += r.lineSize(line * cc)
	}
	return dist, false
}

// liveDelta is targetDelta for a live index.
func (r *Region) liveDelta(index int, dir float32) (float32, bool) {
	it := r.liveItem(index)
	if it == nil {
		return 0, false
	}
	lo, hi := r.itemSpan(it)
	if dir < 0 {
		return r.ViewSize() - hi, true
	}
	return -lo, true
}

// canMove reports whether a programmatic move still has ground to cover.
func (r *Region) canMove() bool {
	dir := r.move.dir
	if dir == 0 {
		return false
	}
	if !r.opts.Loop {
		lo, hi := r.contentSpan()
		if dir < 0 && r.itemEnd >= r.total && hi <= r.ViewSize() {
			return false
		}
		if dir > 0 && r.itemStart <= 0 && lo >= 0 {
			return false
		}
	}
	if d, ok := r.liveDelta(r.move.index, dir); ok && d*dir <= 0 {
		return false
	}
	return true
}

// slowDownDistance simulates the traversal decay from speed down to the
// inertia stop speed and returns the distance it covers.
func slowDownDistance(speed, rate, coefficient, dt float32) float32 {
	v := abs(speed)
	factor := pow(rate, dt*coefficient)
	var d float32
	for i := 0; v >= inertiaStopSpeed && i < 1<<16; i++ {
		v *= factor
		d += v * dt
	}
	return d
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
