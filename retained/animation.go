package retained

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// TweenID uniquely identifies a tween.
type TweenID uint64

var nextTweenID atomic.Uint64

func newTweenID() TweenID {
	return TweenID(nextTweenID.Add(1))
}

// EasingFunc defines how animation progress maps to value progress.
// Input t is 0-1 (time progress), output is 0-1 (value progress).
type EasingFunc func(t float64) float64

// Common easing functions
var (
	// EaseLinear - constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseInQuad - accelerate from zero
	EaseInQuad EasingFunc = func(t float64) float64 { return t * t }

	// EaseOutQuad - decelerate to zero
	EaseOutQuad EasingFunc = func(t float64) float64 { return t * (2 - t) }

	// EaseInOutQuad - accelerate then decelerate
	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	}

	// EaseOutCubic - smooth deceleration (good for UI)
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t--
		return t*t*t + 1
	}

	// EaseInExpo - near-zero start, then a steep ramp (speed-up phases)
	EaseInExpo EasingFunc = func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		return math.Pow(2, 10*t-10)
	}

	// EaseOutExpo - steep start, long settle
	EaseOutExpo EasingFunc = func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*t)
	}

	// EaseOutBack - slight overshoot then settle (bouncy feel)
	EaseOutBack EasingFunc = func(t float64) float64 {
		c1 := 1.70158
		c3 := c1 + 1
		return 1 + c3*(t-1)*(t-1)*(t-1) + c1*(t-1)*(t-1)
	}
)

// EasingByName returns the easing function for a given name.
// Returns nil if the name is unknown.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "ease-in":
		return EaseInQuad
	case "ease-out":
		return EaseOutQuad
	case "ease", "ease-in-out":
		return EaseInOutQuad
	case "cubic":
		return EaseOutCubic
	case "in-expo":
		return EaseInExpo
	case "out-expo":
		return EaseOutExpo
	case "back":
		return EaseOutBack
	default:
		return nil
	}
}

// ============================================================================
// Tweens
// ============================================================================

// Tween interpolates a float value over a fixed duration of frame time.
type Tween struct {
	id         TweenID
	elapsed    float32
	duration   float32 // Seconds
	from, to   float32
	update     func(value float32) // Called each tick with the eased value
	onComplete func()
	easing     EasingFunc
	cancelled  atomic.Bool
}

// ID returns the tween's unique identifier.
func (t *Tween) ID() TweenID {
	return t.id
}

// Cancel stops the tween without running its completion callback.
func (t *Tween) Cancel() {
	t.cancelled.Store(true)
}

// IsCancelled returns whether the tween was cancelled.
func (t *Tween) IsCancelled() bool {
	return t.cancelled.Load()
}

// TweenRegistry owns active tweens and advances them by frame delta time.
type TweenRegistry struct {
	mu     sync.Mutex
	tweens map[TweenID]*Tween
}

// NewTweenRegistry creates an empty registry.
func NewTweenRegistry() *TweenRegistry {
	return &TweenRegistry{tweens: make(map[TweenID]*Tween)}
}

// Count returns the number of active tweens.
func (r *TweenRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tweens)
}

// HasActive returns true if there are any running tweens.
func (r *TweenRegistry) HasActive() bool {
	return r.Count() > 0
}

// Tick advances every tween by dt seconds and removes finished ones.
// Returns true if any tweens are still active.
func (r *TweenRegistry) Tick(dt float32) bool {
	r.mu.Lock()

	type step struct {
		tw    *Tween
		value float32
	}
	var updates []step
	var toComplete []*Tween

	for id, tw := range r.tweens {
		if tw.cancelled.Load() {
			delete(r.tweens, id)
			continue
		}

		tw.elapsed += dt
		t := float64(1)
		if tw.duration > 0 {
			t = math.Min(1, float64(tw.elapsed/tw.duration))
		}
		updates = append(updates, step{tw, lerp(tw.from, tw.to, float32(tw.easing(t)))})

		if t >= 1 {
			delete(r.tweens, id)
			toComplete = append(toComplete, tw)
		}
	}

	hasActive := len(r.tweens) > 0
	r.mu.Unlock()

	// Callbacks run outside the lock so they may start new tweens
	for _, s := range updates {
		if s.tw.update != nil && !s.tw.cancelled.Load() {
			s.tw.update(s.value)
		}
	}
	for _, tw := range toComplete {
		if tw.onComplete != nil && !tw.cancelled.Load() {
			tw.onComplete()
		}
	}

	return hasActive
}

// Clear cancels every tween.
func (r *TweenRegistry) Clear() {
	r.mu.Lock()
	for id, tw := range r.tweens {
		tw.cancelled.Store(true)
		delete(r.tweens, id)
	}
	r.mu.Unlock()
}

// TweenBuilder provides a fluent API for starting tweens.
type TweenBuilder struct {
	registry   *TweenRegistry
	from, to   float32
	duration   time.Duration
	easing     EasingFunc
	update     func(float32)
	onComplete func()
}

// Tween starts building a tween from one value to another.
func (r *TweenRegistry) Tween(from, to float32) *TweenBuilder {
	return &TweenBuilder{
		registry: r,
		from:     from,
		to:       to,
		duration: 300 * time.Millisecond, // Default duration
		easing:   EaseOutCubic,           // Default easing
	}
}

// Duration sets the tween duration.
func (b *TweenBuilder) Duration(d time.Duration) *TweenBuilder {
	b.duration = d
	return b
}

// Easing sets the easing function.
func (b *TweenBuilder) Easing(fn EasingFunc) *TweenBuilder {
	if fn != nil {
		b.easing = fn
	}
	return b
}

// OnUpdate sets the per-tick value callback.
func (b *TweenBuilder) OnUpdate(fn func(value float32)) *TweenBuilder {
	b.update = fn
	return b
}

// OnComplete sets a callback for when the tween finishes.
func (b *TweenBuilder) OnComplete(fn func()) *TweenBuilder {
	b.onComplete = fn
	return b
}

// Start registers the tween. It first updates on the next Tick.
func (b *TweenBuilder) Start() *Tween {
	tw := &Tween{
		id:         newTweenID(),
		duration:   float32(b.duration.Seconds()),
		from:       b.from,
		to:         b.to,
		update:     b.update,
		onComplete: b.onComplete,
		easing:     b.easing,
	}

	b.registry.mu.Lock()
	b.registry.tweens[tw.id] = tw
	b.registry.mu.Unlock()
	return tw
}
