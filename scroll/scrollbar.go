package scroll

import "github.com/agiangrant/listview/retained"

// farJumpDistance is the SetNormalizedPosition distance past which the window
// is refilled at the estimated index instead of scrolled through.
const farJumpDistance = 1000

// Scrollbar is a scrollbar widget a region drives. Values are in [0, 1] with
// 0 at the anchored end of the list. The region installs a listener that the
// widget calls when the user moves it.
type Scrollbar interface {
	SetValue(v float32)
	SetSize(size float32)
	SetVisible(visible bool)
	SetListener(fn func(value float32))
}

// SetScrollbar attaches bar, detaching the previous one. Nil detaches.
func (r *Region) SetScrollbar(bar Scrollbar) {
	if r.scrollbar != nil {
		r.scrollbar.SetListener(nil)
	}
	r.scrollbar = bar
	if bar == nil {
		return
	}
	bar.SetListener(r.onScrollbarValue)
	r.barVisible = r.wantBar()
	bar.SetVisible(r.barVisible)
	r.updateScrollbar(0)
}

func (r *Region) onScrollbarValue(v float32) {
	if r.syncingBar {
		return
	}
	if r.opts.Direction.Reverse() {
		v = 1 - v
	}
	r.SetNormalizedPosition(v)
}

// positionEstimate extrapolates the live window to the whole list: es is the
// average extent per item, total the estimated list extent and offset where
// index 0 would start in view space.
func (r *Region) positionEstimate() (es, total, offset float32, ok bool) {
	n := r.itemEnd - r.itemStart
	if r.opts.Loop || n <= 0 || len(r.items) == 0 {
		return 0, 0, 0, false
	}
	lo, hi := r.contentSpan()
	es = (hi - lo) / float32(n)
	total = es * float32(r.total)
	offset = lo - es*float32(r.itemStart)
	return es, total, offset, true
}

// NormalizedPosition returns how far the list is scrolled, 0 with index 0 at
// the view start and 1 with the last index at the view end. Overscroll gives
// values outside [0, 1]. Loop lists and empty windows report 0.5.
func (r *Region) NormalizedPosition() float32 {
	_, total, offset, ok := r.positionEstimate()
	if !ok {
		return 0.5
	}
	view := r.ViewSize()
	if total <= view {
		if offset < 0 {
			return 1
		}
		return 0
	}
	return -offset / (total - view)
}

// SetNormalizedPosition scrolls to v in [0, 1] as NormalizedPosition reports
// it. Distant targets refill the window at the estimated index. It is a no-op
// for loop lists and empty windows.
func (r *Region) SetNormalizedPosition(v float32) {
	es, total, offset, ok := r.positionEstimate()
	if !ok || es <= 0 {
		return
	}
	view := r.ViewSize()
	if total <= view {
		return
	}
	v = retained.Clamp(v, 0, 1)
	diff := -v*(total-view) - offset
	if abs(diff) <= 0.05 {
		return
	}
	r.velocity = 0
	r.lastVelocity = 0
	if abs(diff) <= farJumpDistance {
		r.setContentPosition(r.pos+diff, true)
		return
	}

	top := int(v * (total - view) / es)
	if r.opts.Direction.Reverse() {
		bottom := int((v*(total-view) + view) / es)
		top = r.total - bottom
	}
	r.FillCells(max(0, min(top, r.total-1)))
}

// needsScroll reports whether the content is estimated to exceed the view.
func (r *Region) needsScroll() bool {
	if r.opts.Loop {
		return true
	}
	_, total, _, ok := r.positionEstimate()
	return ok && total > r.ViewSize()
}

func (r *Region) wantBar() bool {
	if r.opts.ScrollbarVisibility == ScrollbarPermanent {
		return true
	}
	return r.needsScroll()
}

func (r *Region) updateScrollbarVisibility() {
	if r.scrollbar == nil {
		return
	}
	if visible := r.wantBar(); visible != r.barVisible {
		r.barVisible = visible
		r.scrollbar.SetVisible(visible)
	}
}

// updateScrollbar pushes size and value to the attached scrollbar. offset is
// the current overscroll, which shrinks the thumb.
func (r *Region) updateScrollbar(offset float32) {
	if r.scrollbar == nil {
		return
	}
	size := float32(1)
	if n := r.itemEnd - r.itemStart; !r.opts.Loop && n > 0 && r.total > 0 {
		if extent := r.extent(); extent > 0 {
			size = (r.ViewSize() - abs(offset)) / extent * float32(n) / float32(r.total)
		}
	}
	value := r.NormalizedPosition()
	if r.opts.Direction.Reverse() {
		value = 1 - value
	}

	r.syncingBar = true
	r.scrollbar.SetSize(retained.Clamp(size, 0, 1))
	r.scrollbar.SetValue(retained.Clamp(value, 0, 1))
	r.syncingBar = false
}

// Bar is a headless Scrollbar that records what the region sets. Drag
// simulates the user moving the thumb.
type Bar struct {
	Value   float32
	Size    float32
	Visible bool

	listener func(float32)
}

// SetValue implements Scrollbar.
func (b *Bar) SetValue(v float32) { b.Value = v }

// SetSize implements Scrollbar.
func (b *Bar) SetSize(size float32) { b.Size = size }

// SetVisible implements Scrollbar.
func (b *Bar) SetVisible(visible bool) { b.Visible = visible }

// SetListener implements Scrollbar.
func (b *Bar) SetListener(fn func(float32)) { b.listener = fn }

// Drag moves the thumb to v and notifies the region.
func (b *Bar) Drag(v float32) {
	b.Value = v
	if b.listener != nil {
		b.listener(v)
	}
}
