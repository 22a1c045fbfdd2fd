package scroll

import "github.com/agiangrant/listview/retained"

const (
	snapVelocityThreshold = 150
	snapFinishThreshold   = 0.1
)

// SnapData is the state of one snap cycle. Current and Target are content
// offsets relative to where the cycle started.
type SnapData struct {
	Current        float32
	Target         float32
	Moving         bool
	NearestChanged bool
	// Nearest is the index the snap is moving to.
	Nearest int
}

// Remaining returns the distance left to the snap target.
func (s SnapData) Remaining() float32 { return abs(s.Target - s.Current) }

func (s *SnapData) reset() {
	s.Current, s.Target = 0, 0
	s.Moving, s.NearestChanged = false, false
}

// Snap returns the current snap state.
func (r *Region) Snap() SnapData { return r.snap }

// SnapNearestIndex returns the index the last snap aligned or is aligning.
func (r *Region) SnapNearestIndex() int { return r.snap.Nearest }

// ScrollGrid snaps one line forward (toward higher indices) or backward. The
// step is the SizeProvider size of the next item plus spacing, or the size of
// the first shown item. Snapping must be enabled.
func (r *Region) ScrollGrid(forward bool, immediately bool) {
	step := r.opts.CellCount
	if !forward {
		step = -step
	}
	next := r.snap.Nearest + step
	if !r.opts.Loop && (next < 0 || next >= r.total) {
		return
	}

	var value float32
	switch {
	case r.sizes != nil:
		r.safely("ItemSize", next, func() { value = r.sizes.ItemSize(next) + r.opts.Spacing })
	default:
		if it := r.GetFirstShow(); it != nil {
			value = it.SizeWithSpacing()
		}
	}
	if value <= 0 {
		return
	}

	r.snap.Nearest = next
	r.snap.Current = 0
	r.snap.Target = value
	if forward {
		r.snap.Target = -value
	}
	r.snap.Moving = true
	r.snap.NearestChanged = true
	if immediately {
		r.updateSnapMove(r.lastDT, true)
	}
}

// initSnap starts a snap cycle that aligns the item spanning the anchor edge,
// or the one after it when less than half of it is still in view.
func (r *Region) initSnap() {
	r.velocity = 0
	r.lastVelocity = 0
	it := r.GetFirstShow()
	if it == nil {
		return
	}
	near, far := r.anchorDepth(it)
	sgn := float32(1)
	next := 1
	if r.opts.Direction.Reverse() {
		sgn, next = -1, -1
	}

	if (near+far)/2 > 0 {
		r.snap.Target = -near * sgn
		r.snap.Nearest = it.index
	} else {
		r.snap.Target = -(far + r.opts.Spacing) * sgn
		r.snap.Nearest = it.index + next
	}
	if !r.opts.Loop {
		// Never snap past a list boundary.
		r.snap.Target += r.CalculateOffset(r.snap.Target)
	}
	r.snap.Current = 0
	r.snap.Moving = true
	r.snap.NearestChanged = true
}

// updateSnapMove advances an active snap by one frame.
func (r *Region) updateSnapMove(dt float32, immediately bool) {
	if !r.opts.EnableSnap {
		return
	}
	if r.canSnap() {
		old := r.snap.Current
		var speed float32
		r.snap.Current = retained.SmoothDamp(old, r.snap.Target, &speed, r.opts.SmoothDumpRate, 0, dt)

		target := r.liveItem(r.snap.Nearest)
		if target == nil {
			target = r.GetShowItemByIndex(r.snap.Nearest)
		}
		if target != nil && r.snap.NearestChanged {
			lo, hi := r.itemSpan(target)
			if c := (lo + hi) / 2; c >= 0 && c <= r.ViewSize() {
				r.snap.NearestChanged = false
				r.onSnapNearest.fire(r, "OnSnapNearestChanged", target)
			}
		}

		if immediately || r.snap.Remaining() < snapFinishThreshold {
			r.snap.Moving = false
			r.snap.NearestChanged = false
			r.setContentPosition(retained.Ceil(r.pos+r.snap.Target-old), true)
			if target != nil {
				r.onSnapFinished.fire(r, "OnSnapFinished", target)
			}
		} else {
			r.setContentPosition(r.pos+r.snap.Current-old, true)
		}
	}

	if !r.updateSnap || !r.opts.EnableDrag {
		return
	}
	r.updateSnap = false
	r.initSnap()
}

func (r *Region) canSnap() bool {
	if r.dragging || len(r.items) == 0 {
		return false
	}
	if r.extent() < r.ViewSize() {
		return false
	}
	if abs(r.velocity) > snapVelocityThreshold {
		return false
	}
	if abs(r.lastVelocity) > snapVelocityThreshold {
		r.updateSnap = true
	}
	return r.snap.Moving
}
