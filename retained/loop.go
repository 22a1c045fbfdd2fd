package retained

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrLoopRunning is returned by Run when the loop is already running.
var ErrLoopRunning = errors.New("retained: loop already running")

// Ticker is advanced once per frame with the frame's delta time in seconds.
type Ticker interface {
	Tick(dt float32)
}

// TickFunc adapts a function to Ticker.
type TickFunc func(dt float32)

// Tick implements Ticker.
func (f TickFunc) Tick(dt float32) { f(dt) }

// TickerID identifies a registered ticker.
type TickerID uint64

// LoopConfig configures the frame loop behavior.
type LoopConfig struct {
	// TargetFPS is the desired frames per second (default: 60).
	TargetFPS int

	// MaxDeltaTime caps a single frame's delta so a stall does not fling
	// physics forward (default: 0.1s).
	MaxDeltaTime float32
}

// DefaultLoopConfig returns sensible defaults.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		TargetFPS:    60,
		MaxDeltaTime: 0.1,
	}
}

// Frame provides context for each loop iteration.
type Frame struct {
	// Number is the monotonically increasing frame counter.
	Number uint64

	// DeltaTime is seconds since the previous frame.
	DeltaTime float64

	// Time is seconds of accumulated frame time.
	Time float64
}

type tickerEntry struct {
	id     TickerID
	ticker Ticker
}

// Loop drives tweens and tickers. Within one frame tweens run first, then
// tickers in registration order, then the frame callback.
type Loop struct {
	mu      sync.Mutex
	config  LoopConfig
	tweens  *TweenRegistry
	tickers []tickerEntry
	nextID  TickerID
	onFrame func(*Frame)
	time    float64

	running    atomic.Bool
	paused     atomic.Bool
	frameCount atomic.Uint64
}

// NewLoop creates a frame loop with the specified configuration.
func NewLoop(config LoopConfig) *Loop {
	if config.TargetFPS < 1 {
		config.TargetFPS = 60
	}
	if config.MaxDeltaTime <= 0 {
		config.MaxDeltaTime = 0.1
	}
	return &Loop{
		config: config,
		tweens: NewTweenRegistry(),
	}
}

// Tweens returns the tween registry ticked by this loop.
func (l *Loop) Tweens() *TweenRegistry {
	return l.tweens
}

// Add registers a ticker.
func (l *Loop) Add(t Ticker) TickerID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.tickers = append(l.tickers, tickerEntry{id: l.nextID, ticker: t})
	return l.nextID
}

// Remove unregisters a ticker.
func (l *Loop) Remove(id TickerID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.tickers {
		if e.id == id {
			l.tickers = append(l.tickers[:i], l.tickers[i+1:]...)
			return
		}
	}
}

// OnFrame sets a callback that runs at the end of every frame.
func (l *Loop) OnFrame(fn func(*Frame)) {
	l.mu.Lock()
	l.onFrame = fn
	l.mu.Unlock()
}

// Step advances one frame by dt seconds. Paused loops return nil.
func (l *Loop) Step(dt float32) *Frame {
	if l.paused.Load() {
		return nil
	}
	dt = clamp(dt, 0, l.config.MaxDeltaTime)

	l.mu.Lock()
	tickers := make([]tickerEntry, len(l.tickers))
	copy(tickers, l.tickers)
	onFrame := l.onFrame
	l.time += float64(dt)
	now := l.time
	l.mu.Unlock()

	l.tweens.Tick(dt)
	for _, e := range tickers {
		e.ticker.Tick(dt)
	}

	frame := &Frame{
		Number:    l.frameCount.Add(1),
		DeltaTime: float64(dt),
		Time:      now,
	}
	if onFrame != nil {
		onFrame(frame)
	}
	return frame
}

// Run steps the loop at TargetFPS with wall-clock delta times until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	ticker := time.NewTicker(time.Second / time.Duration(l.config.TargetFPS))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			l.Step(dt)
		}
	}
}

// Pause pauses the loop (Step becomes a no-op).
func (l *Loop) Pause() {
	l.paused.Store(true)
}

// Resume resumes a paused loop.
func (l *Loop) Resume() {
	l.paused.Store(false)
}

// IsPaused returns whether the loop is paused.
func (l *Loop) IsPaused() bool {
	return l.paused.Load()
}

// IsRunning returns whether Run is active.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// Stats returns loop statistics.
func (l *Loop) Stats() LoopStats {
	return LoopStats{
		FrameCount: l.frameCount.Load(),
		TargetFPS:  l.config.TargetFPS,
	}
}

// LoopStats contains performance metrics.
type LoopStats struct {
	FrameCount uint64
	TargetFPS  int
}
