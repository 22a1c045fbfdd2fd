package scroll

import (
	"github.com/agiangrant/listview/retained"
)

// maxWindowSteps bounds the number of lines a single window update may add
// or remove, so a zero-sized template can not spin a frame forever.
const maxWindowSteps = 4096

// ============================================================================
// Geometry
// ============================================================================

func (r *Region) axis() retained.Axis { return r.opts.Direction.Axis() }

// anchor is where the content origin sits in view space: the view start for
// forward directions, the view end for reversed ones.
func (r *Region) anchor() float32 {
	if r.opts.Direction.Reverse() {
		return r.ViewSize()
	}
	return 0
}

func (r *Region) applyContentPosition() {
	r.content.SetPosition(retained.Vec2{}.With(r.axis(), r.anchor()+r.pos))
}

// setContentPosition moves the content and, with update, lets the window
// follow it.
func (r *Region) setContentPosition(pos float32, update bool) {
	r.pos = pos
	r.applyContentPosition()
	if update {
		r.updateItems()
	}
}

// shift moves the content by d together with every reference position, so
// a window change does not move what is on screen.
func (r *Region) shift(d float32) {
	if d == 0 {
		return
	}
	r.pos += d
	r.prevPos += d
	r.dragStartPos += d
	r.applyContentPosition()
}

// contentSpan returns the live items' main-axis span in view space.
func (r *Region) contentSpan() (lo, hi float32) {
	base := r.anchor() + r.pos
	if len(r.items) == 0 {
		return base, base
	}
	lo, hi = r.layout.ContentBounds(r.content).Span(r.axis())
	return lo + base, hi + base
}

// itemSpan returns one item's main-axis span in view space.
func (r *Region) itemSpan(it *Item) (lo, hi float32) {
	base := r.anchor() + r.pos
	lo, hi = r.layout.ItemBounds(it.node).Span(r.axis())
	return lo + base, hi + base
}

// anchorDepth returns how far an item's near and far edges are from the
// anchor edge of the view, measured into the view.
func (r *Region) anchorDepth(it *Item) (near, far float32) {
	lo, hi := r.itemSpan(it)
	if r.opts.Direction.Reverse() {
		v := r.ViewSize()
		return v - hi, v - lo
	}
	return lo, hi
}

func (r *Region) extent() float32 {
	lo, hi := r.contentSpan()
	return hi - lo
}

func (r *Region) liveItem(index int) *Item {
	if index < r.itemStart || index >= r.itemEnd {
		return nil
	}
	if it := r.items[index-r.itemStart]; it.index == index {
		return it
	}
	for _, it := range r.items {
		if it.index == index {
			return it
		}
	}
	return nil
}

// ============================================================================
// Window Update
// ============================================================================

// updateItems grows or trims the window so the live items cover the view,
// keeping at most threshold of overscan past either edge.
func (r *Region) updateItems() bool {
	view := r.ViewSize()
	changed := false

	lo, hi := r.contentSpan()
	if hi < view {
		for guard := 0; hi < view && guard < maxWindowSteps; guard++ {
			if r.newItemAtEnd() <= 0 {
				break
			}
			changed = true
			lo, hi = r.contentSpan()
		}
	} else if hi > view+r.threshold {
		for guard := 0; hi > view+r.threshold && guard < maxWindowSteps; guard++ {
			if r.deleteItemAtEnd() <= 0 {
				break
			}
			changed = true
			lo, hi = r.contentSpan()
		}
	}

	if lo > 0 {
		for guard := 0; lo > 0 && guard < maxWindowSteps; guard++ {
			if r.newItemAtStart() <= 0 {
				break
			}
			changed = true
			lo, _ = r.contentSpan()
		}
	} else if lo < -r.threshold {
		for guard := 0; lo < -r.threshold && guard < maxWindowSteps; guard++ {
			if r.deleteItemAtStart() <= 0 {
				break
			}
			changed = true
			lo, _ = r.contentSpan()
		}
	}
	return changed
}

func (r *Region) moving() bool {
	return r.dragging || r.velocity != 0
}

// newItemAtStart adds one line before ItemStart and returns the extent it
// added.
func (r *Region) newItemAtStart() float32 {
	cc := r.opts.CellCount
	if !r.opts.Loop && r.itemStart-cc < 0 {
		return 0
	}
	before := r.extent()
	var last *Item
	for i := 0; i < cc; i++ {
		it := r.instantiate(r.itemStart-1, true)
		if it == nil {
			break
		}
		r.itemStart--
		last = it
	}
	if last == nil {
		return 0
	}
	r.layout.Rebuild(r.content)
	delta := r.extent() - before
	if !r.opts.Direction.Reverse() {
		r.shift(-delta)
	}
	r.threshold = max(r.threshold, last.MainSize())
	return delta
}

// newItemAtEnd completes the last line, or adds a new one, at ItemEnd and
// returns the extent it added.
func (r *Region) newItemAtEnd() float32 {
	cc := r.opts.CellCount
	if !r.opts.Loop && r.itemEnd >= r.total {
		return 0
	}
	before := r.extent()
	count := cc - len(r.items)%cc
	var last *Item
	for i := 0; i < count; i++ {
		if !r.opts.Loop && r.itemEnd >= r.total {
			break
		}
		it := r.instantiate(r.itemEnd, false)
		if it == nil {
			break
		}
		r.itemEnd++
		last = it
	}
	if last == nil {
		return 0
	}
	r.layout.Rebuild(r.content)
	delta := r.extent() - before
	if r.opts.Direction.Reverse() {
		r.shift(delta)
	}
	r.threshold = max(r.threshold, last.MainSize())
	// A completed partial line adds no extent but still counts as progress.
	return max(delta, 1e-3)
}

// deleteItemAtStart recycles the first line and returns the extent removed.
func (r *Region) deleteItemAtStart() float32 {
	if r.moving() && !r.opts.Loop && r.itemEnd >= r.total-1 {
		return 0
	}
	if len(r.items) == 0 {
		return 0
	}
	before := r.extent()
	for i := 0; i < r.opts.CellCount && len(r.items) > 0; i++ {
		it := r.items[0]
		r.items[0] = nil
		r.items = r.items[1:]
		r.itemStart++
		r.recycleItem(it)
	}
	r.layout.Rebuild(r.content)
	delta := before - r.extent()
	if !r.opts.Direction.Reverse() {
		r.shift(delta)
	}
	return delta
}

// deleteItemAtEnd recycles the last line and returns the extent removed.
func (r *Region) deleteItemAtEnd() float32 {
	cc := r.opts.CellCount
	if r.moving() && !r.opts.Loop && r.itemStart < cc {
		return 0
	}
	if len(r.items) == 0 {
		return 0
	}
	before := r.extent()
	for len(r.items) > 0 {
		last := len(r.items) - 1
		it := r.items[last]
		r.items[last] = nil
		r.items = r.items[:last]
		r.itemEnd--
		r.recycleItem(it)
		if mod(r.itemEnd, cc) == 0 {
			break
		}
	}
	r.layout.Rebuild(r.content)
	delta := before - r.extent()
	if r.opts.Direction.Reverse() {
		r.shift(-delta)
	}
	return delta
}

// ============================================================================
// Item Lifecycle
// ============================================================================

// instantiate spawns, parents and binds an item for index. It returns nil
// when no template or pool can serve the index.
func (r *Region) instantiate(index int, atStart bool) *Item {
	name, tpl := r.templateFor(index)
	p, ok := r.pools.TryGet(name)
	if !ok {
		if tpl == nil {
			r.log.Error().Str("template", name).Int("index", index).Msg("template not found")
			return nil
		}
		var err error
		p, err = r.pools.GetOrCreate(name, templateItem(name, tpl), r.opts.PoolCount)
		if err != nil {
			r.log.Error().Err(err).Str("template", name).Int("index", index).Msg("create pool failed")
			return nil
		}
	}
	it, err := p.Spawn()
	if err != nil {
		r.log.Error().Err(err).Str("template", name).Int("index", index).Msg("spawn item failed")
		return nil
	}
	it.pool = p
	it.region = r
	it.index = index
	it.node.SetActive(true)
	if atStart {
		r.content.InsertChild(0, it.node)
		r.items = append(r.items, nil)
		copy(r.items[1:], r.items)
		r.items[0] = it
	} else {
		r.content.AddChild(it.node)
		r.items = append(r.items, it)
	}
	r.onInstantiated.fire(r, "OnItemInstantiated", it)
	r.bind(it, index)
	return it
}

func (r *Region) bind(it *Item, index int) {
	r.safely("FillItemData", index, func() { r.source.FillItemData(it, index) })
}

// templateFor resolves the pool name and template node for index. The node
// is nil when the name can not be resolved; an existing pool may still serve it.
func (r *Region) templateFor(index int) (string, *retained.Node) {
	if r.templates == nil {
		return r.templateName, r.template
	}
	var name string
	r.safely("TemplateName", index, func() { name = r.templates.TemplateName(index) })
	if name == "" || name == r.templateName {
		return r.templateName, r.template
	}
	if r.loader == nil {
		return name, nil
	}
	tpl, _ := r.loader.Load(name)
	return name, tpl
}

func (r *Region) recycleItem(it *Item) {
	r.onRecycled.fire(r, "OnItemRecycled", it)
	it.Recycle()
}

func (r *Region) recycleAll() {
	for i := len(r.items) - 1; i >= 0; i-- {
		r.recycleItem(r.items[i])
		r.items[i] = nil
	}
	r.items = r.items[:0]
	r.layout.Rebuild(r.content)
}

// ============================================================================
// Size Estimates
// ============================================================================

// lineSize returns the main-axis size of index plus spacing. Live items are
// measured; others come from the SizeProvider or the live average.
func (r *Region) lineSize(index int) float32 {
	if it := r.liveItem(index); it != nil {
		return it.MainSize() + r.opts.Spacing
	}
	if r.opts.CellCount > 1 {
		if r.opts.CellSize != (retained.Vec2{}) {
			return r.opts.CellSize.Get(r.axis()) + r.opts.Spacing
		}
	}
	if r.sizes != nil {
		var size float32
		if r.safely("ItemSize", index, func() { size = r.sizes.ItemSize(index) }) {
			return size + r.opts.Spacing
		}
	}
	if len(r.items) == 0 {
		r.log.Warn().Err(ErrNoSize).Int("index", index).Msg("no live item to estimate size from")
		return 0
	}
	var sum float32
	for _, it := range r.items {
		sum += it.MainSize()
	}
	return sum/float32(len(r.items)) + r.opts.Spacing
}
