package scroll

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agiangrant/listview/retained"
)

// stateLog records state changes.
type stateLog []MoveState

func (s *stateLog) record(st MoveState) { *s = append(*s, st) }

func (s stateLog) count(st MoveState) int {
	n := 0
	for _, v := range s {
		if v == st {
			n++
		}
	}
	return n
}

func runMove(t *testing.T, r *Region, limit int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if r.State() == StateMoveComplete {
			return
		}
		r.Tick(frame)
	}
	if r.State() != StateMoveComplete {
		t.Fatalf("move did not complete in %d frames, state = %v", limit, r.State())
	}
}

func TestScrollToViewStep(t *testing.T) {
	r, _ := newTestRegion(t, 100, nil)
	r.FillCells(0)
	var states stateLog
	r.OnStateChanged(states.record)

	r.ScrollToView(30, true, 3000)
	runMove(t, r, 1000)
	step(r, 30)

	if n := states.count(StateMoveComplete); n != 1 {
		t.Errorf("MoveComplete fired %d times, want 1 (%v)", n, states)
	}
	if r.ItemEnd() != 31 {
		t.Errorf("ItemEnd = %d, want 31", r.ItemEnd())
	}
	it := r.liveItem(30)
	if it == nil {
		t.Fatal("item 30 not live")
	}
	lo, hi := r.itemSpan(it)
	if lo < 0 || hi > testView+1 {
		t.Errorf("item 30 span = [%v, %v], want it inside the view", lo, hi)
	}
	for i, want := range []MoveState{StateStartMove, StateMoving, StateEndMove, StateMoveComplete} {
		if i >= len(states) || states[i] != want {
			t.Fatalf("states = %v, want prefix StartMove Moving EndMove MoveComplete", states)
		}
	}
	checkWindow(t, r)
}

func TestScrollToViewBackward(t *testing.T) {
	r, _ := newTestRegion(t, 100, nil)
	r.FillCells(50)
	r.ScrollToView(20, true, 3000)
	runMove(t, r, 1000)

	it := r.liveItem(20)
	if it == nil {
		t.Fatalf("item 20 not live, window = [%d, %d)", r.ItemStart(), r.ItemEnd())
	}
	if lo, _ := r.itemSpan(it); lo < -1 || lo > 1 {
		t.Errorf("item 20 starts at %v, want the view start", lo)
	}
}

func TestScrollToViewBounces(t *testing.T) {
	for _, b := range []BounceType{BounceOnlyStart, BounceOnlyEnd, BounceBoth} {
		t.Run(b.String(), func(t *testing.T) {
			r, _ := newTestRegion(t, 100, func(o *Options) { o.Bounce = b })
			r.FillCells(0)
			var states stateLog
			r.OnStateChanged(states.record)

			r.ScrollToView(30, true, 3000)
			runMove(t, r, 3000)
			step(r, 30)

			if n := states.count(StateMoveComplete); n != 1 {
				t.Errorf("MoveComplete fired %d times, want 1 (%v)", n, states)
			}
			if states.count(StateEndMove) != 1 {
				t.Errorf("states = %v, want one EndMove", states)
			}
			if r.Position() != retained.Ceil(r.Position()) {
				t.Errorf("resting position %v not whole", r.Position())
			}
		})
	}
}

func TestScrollToViewImmediate(t *testing.T) {
	r, _ := newTestRegion(t, 100, nil)
	r.FillCells(0)
	r.ScrollToView(50, false, 0)
	if r.ItemStart() != 50 {
		t.Errorf("ItemStart = %d, want 50", r.ItemStart())
	}
	if r.State() != StateStop {
		t.Errorf("state = %v, want Stop", r.State())
	}
}

func TestScrollToViewLoop(t *testing.T) {
	var buf bytes.Buffer
	r, _ := newTestRegion(t, 4, func(o *Options) {
		o.Loop = true
		o.Logger = bufferLogger(&buf)
	})
	r.FillCells(0)

	r.ScrollToView(0, true, 3000)
	if r.State() != StateStop {
		t.Errorf("state = %v, want Stop", r.State())
	}
	if !strings.Contains(buf.String(), "loop lists") {
		t.Errorf("log = %q, want a warning", buf.String())
	}

	r.ScrollToView(6, true, 3000)
	runMove(t, r, 1000)
	if it := r.liveItem(6); it == nil {
		t.Errorf("raw item 6 not live, window = [%d, %d)", r.ItemStart(), r.ItemEnd())
	}
}

func TestScrollToViewRetarget(t *testing.T) {
	r, _ := newTestRegion(t, 100, nil)
	r.FillCells(0)
	var states stateLog
	r.OnStateChanged(states.record)

	r.ScrollToView(30, true, 3000)
	step(r, 10)
	r.ScrollToView(12, true, 3000)
	runMove(t, r, 1000)

	if n := states.count(StateMoveComplete); n != 1 {
		t.Errorf("MoveComplete fired %d times, want 1", n)
	}
	if r.liveItem(12) == nil {
		t.Errorf("item 12 not live, window = [%d, %d)", r.ItemStart(), r.ItemEnd())
	}
}

func TestStopMovement(t *testing.T) {
	r, _ := newTestRegion(t, 100, nil)
	r.FillCells(0)
	r.ScrollToView(30, true, 3000)
	step(r, 10)

	r.StopMovement(0, false)
	pos := r.Position()
	step(r, 10)
	if r.State() != StateStop {
		t.Errorf("state = %v, want Stop", r.State())
	}
	if r.Position() != pos {
		t.Errorf("position moved from %v to %v after stop", pos, r.Position())
	}
}

func TestStopMovementPlaysEnd(t *testing.T) {
	r, _ := newTestRegion(t, 100, func(o *Options) { o.Bounce = BounceOnlyEnd })
	r.FillCells(0)
	var states stateLog
	r.OnStateChanged(states.record)

	r.ScrollToView(30, true, 3000)
	step(r, 5)
	r.StopMovement(3, true)
	if r.ItemStart() != 27 {
		t.Errorf("ItemStart = %d, want 27", r.ItemStart())
	}
	if r.State() != StateEndMove {
		t.Errorf("state = %v, want EndMove", r.State())
	}
	runMove(t, r, 1000)
	if n := states.count(StateMoveComplete); n != 1 {
		t.Errorf("MoveComplete fired %d times, want 1", n)
	}
}

func TestPauseResume(t *testing.T) {
	r, _ := newTestRegion(t, 100, nil)
	r.FillCells(0)
	r.ScrollToView(30, true, 3000)
	step(r, 5)

	r.SetPaused(true)
	if r.State() != StatePause {
		t.Errorf("state = %v, want Pause", r.State())
	}
	pos := r.Position()
	step(r, 10)
	if r.Position() != pos {
		t.Errorf("position moved while paused")
	}

	r.SetPaused(false)
	if r.State() != StateMoving {
		t.Errorf("state = %v, want Moving", r.State())
	}
	runMove(t, r, 1000)
}

func TestDragCancelsMove(t *testing.T) {
	r, _ := newTestRegion(t, 100, nil)
	r.FillCells(0)
	r.ScrollToView(30, true, 3000)
	step(r, 5)

	drag(r, retained.Vec2{Y: 300}, retained.Vec2{Y: 310})
	if r.State() != StateStop {
		t.Errorf("state = %v, want Stop", r.State())
	}
	if r.move.custom {
		t.Error("programmatic move still active")
	}
}

// phaseSource overrides the start and end phases.
type phaseSource struct {
	starts, ends int
}

func (p *phaseSource) FillItemData(*Item, int) {}

func (p *phaseSource) StartBounce(r *Region, _ float32, done func()) float32 {
	p.starts++
	done()
	return r.Position()
}

func (p *phaseSource) EndBounce(r *Region, _ float32, done func()) float32 {
	p.ends++
	if p.ends == 3 {
		done()
	}
	return r.Position()
}

func TestBounceOverrides(t *testing.T) {
	src := &phaseSource{}
	r := newRegionWith(t, 100, src, nil)
	r.FillCells(0)
	r.ScrollToView(10, true, 3000)
	runMove(t, r, 1000)

	if src.starts != 1 {
		t.Errorf("StartBounce calls = %d, want 1", src.starts)
	}
	if src.ends != 3 {
		t.Errorf("EndBounce calls = %d, want 3", src.ends)
	}
}

func TestSlowDownDistance(t *testing.T) {
	if d := slowDownDistance(50, 0.3, 2, frame); d != 0 {
		t.Errorf("below stop speed = %v, want 0", d)
	}
	short := slowDownDistance(1000, 0.3, 2, frame)
	long := slowDownDistance(3000, 0.3, 2, frame)
	if short <= 0 || long <= short {
		t.Errorf("distances = %v, %v, want positive and growing with speed", short, long)
	}
}
