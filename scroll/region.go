package scroll

import (
	"fmt"

	"github.com/agiangrant/listview/pool"
	"github.com/agiangrant/listview/retained"
	"github.com/rs/zerolog"
)

// Region is a virtualized scroll list or grid. It keeps a contiguous window
// [ItemStart, ItemEnd) of live items over the content node, moves the content
// along one axis under drag, inertia, snap and programmatic moves, and
// recycles items that leave the view.
//
// Positions are main-axis scalars in the view's local space: the view spans
// [0, ViewSize] with y growing downward and x growing rightward. A Region is
// owned by the frame loop goroutine and is not safe for concurrent use.
type Region struct {
	view    *retained.Node
	content *retained.Node

	source    ItemSource
	templates TemplateProvider
	sizes     SizeProvider
	startFx   StartBouncer
	moveFx    MoveBouncer
	endFx     EndBouncer
	loader    retained.ResourceLoader

	opts         Options
	log          zerolog.Logger
	layout       retained.Layout
	pools        *pool.Registry[*Item]
	localPools   bool
	template     *retained.Node
	templateName string

	total     int
	items     []*Item
	itemStart int
	itemEnd   int
	threshold float32

	// pos is the content offset from its anchor edge.
	pos          float32
	velocity     float32
	lastVelocity float32
	dragging     bool
	dragStartPos float32
	pointerStart retained.Vec2
	lastDT       float32

	prevPos  float32
	prevSpan [2]float32
	prevView float32

	move   moveState
	snap   SnapData
	paused bool

	updateSnap bool

	scrollbar  Scrollbar
	syncingBar bool
	barVisible bool

	onState        listeners[MoveState]
	onValue        listeners[float32]
	onSnapFinished listeners[*Item]
	onSnapNearest  listeners[*Item]
	onInstantiated listeners[*Item]
	onRecycled     listeners[*Item]
	onFilled       listeners[*Region]
}

// New creates a region that scrolls content inside view. The content node is
// parented under view when it is not already. Items are not created until
// FillCells.
func New(view, content *retained.Node, source ItemSource, opts Options) (*Region, error) {
	if view == nil || content == nil {
		return nil, ErrNoContent
	}
	if source == nil {
		return nil, ErrNoSource
	}
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	r := &Region{
		view:     view,
		content:  content,
		source:   source,
		opts:     opts,
		log:      zerolog.Nop(),
		total:    opts.TotalCount,
		lastDT:   1.0 / 60,
		prevView: -1,
	}
	if opts.Logger != nil {
		r.log = opts.Logger.With().Str("component", "scroll").Logger()
	}
	r.templates, _ = source.(TemplateProvider)
	r.sizes, _ = source.(SizeProvider)
	r.startFx, _ = source.(StartBouncer)
	r.moveFx, _ = source.(MoveBouncer)
	r.endFx, _ = source.(EndBouncer)
	r.loader = opts.Loader
	if l, ok := source.(retained.ResourceLoader); ok {
		r.loader = l
	}
	r.move.index = r.total
	r.move.tweens = retained.NewTweenRegistry()

	r.template = opts.Template
	r.templateName = opts.TemplateName
	if r.template == nil && opts.TemplateName != "" && opts.Loader != nil {
		tpl, ok := opts.Loader.Load(opts.TemplateName)
		if !ok {
			return nil, fmt.Errorf("%w: %q not found", ErrNoTemplate, opts.TemplateName)
		}
		r.template = tpl
	}
	if r.template == nil && r.templates == nil {
		return nil, ErrNoTemplate
	}
	if r.templateName == "" {
		r.templateName = "item"
		if r.template != nil && r.template.Name() != "" {
			r.templateName = r.template.Name()
		}
	}

	r.layout = opts.Layout
	if r.layout == nil {
		r.layout = r.defaultLayout()
	}

	r.pools = opts.Pools
	if r.pools == nil {
		r.localPools = true
		r.pools = NewItemRegistry(opts.Instantiator, opts.PoolMode, func(c *pool.RegistryConfig[*Item]) {
			c.Logger = opts.Logger
		})
	}

	if content.Parent() != view {
		view.AddChild(content)
	}
	r.applyContentPosition()
	return r, nil
}

func (r *Region) defaultLayout() retained.Layout {
	axis := r.opts.Direction.Axis()
	if r.opts.CellCount <= 1 {
		return &retained.StackLayout{Axis: axis, Spacing: r.opts.Spacing, AnchorEnd: r.opts.Direction.Reverse()}
	}
	cell := r.opts.CellSize
	if cell == (retained.Vec2{}) && r.template != nil {
		cell = r.template.PreferredSize()
	}
	return &retained.GridLayout{
		Axis:      axis,
		CellSize:  cell,
		CellCount: r.opts.CellCount,
		Spacing:   retained.Vec2{X: r.opts.Spacing, Y: r.opts.Spacing},
		AnchorEnd: r.opts.Direction.Reverse(),
	}
}

// ============================================================================
// Accessors
// ============================================================================

// View returns the view node.
func (r *Region) View() *retained.Node { return r.view }

// Content returns the content node.
func (r *Region) Content() *retained.Node { return r.content }

// Options returns the normalized options the region was built with.
func (r *Region) Options() Options { return r.opts }

// Direction returns the scroll direction.
func (r *Region) Direction() Direction { return r.opts.Direction }

// Loop reports whether the list wraps around.
func (r *Region) Loop() bool { return r.opts.Loop }

// TotalCount returns the logical item count.
func (r *Region) TotalCount() int { return r.total }

// SetTotalCount changes the logical item count and resets the move target.
// Call FillCells or RefreshCells afterward to rebind the window.
func (r *Region) SetTotalCount(n int) {
	r.total = max(0, n)
	r.move.index = r.total
}

// ItemStart returns the first live index.
func (r *Region) ItemStart() int { return r.itemStart }

// ItemEnd returns one past the last live index.
func (r *Region) ItemEnd() int { return r.itemEnd }

// ShowItems returns the live items in window order.
func (r *Region) ShowItems() []*Item {
	out := make([]*Item, len(r.items))
	copy(out, r.items)
	return out
}

// GetShowItem returns the i-th live item, or nil when out of range.
func (r *Region) GetShowItem(i int) *Item {
	if i < 0 || i >= len(r.items) {
		return nil
	}
	return r.items[i]
}

// GetShowItemByIndex returns the live item bound to index. When it is not
// live the first live item is returned; nil only for an empty window.
func (r *Region) GetShowItemByIndex(index int) *Item {
	if len(r.items) == 0 {
		return nil
	}
	if it := r.liveItem(index); it != nil {
		return it
	}
	return r.items[0]
}

// GetFirstShow returns the live item spanning the anchor edge of the view,
// or the first live item when none does.
func (r *Region) GetFirstShow() *Item {
	if len(r.items) == 0 {
		return nil
	}
	for _, it := range r.items {
		a, b := r.anchorDepth(it)
		if b > 0 && a <= 0 {
			return it
		}
	}
	return r.items[0]
}

// Position returns the content offset along the scroll axis.
func (r *Region) Position() float32 { return r.pos }

// SetPosition moves the content without creating or recycling items.
func (r *Region) SetPosition(pos float32) {
	r.setContentPosition(pos, false)
}

// Velocity returns the main-axis content velocity in units per second.
func (r *Region) Velocity() float32 { return r.velocity }

// SetVelocity sets the main-axis content velocity.
func (r *Region) SetVelocity(v float32) { r.velocity = v }

// State returns the programmatic move state.
func (r *Region) State() MoveState { return r.move.state }

// Dragging reports whether a drag is in progress.
func (r *Region) Dragging() bool { return r.dragging }

// ViewSize returns the view extent along the scroll axis.
func (r *Region) ViewSize() float32 {
	return r.view.PreferredSize().Get(r.axis())
}

// ContentSize returns the extent of the live items along the scroll axis.
func (r *Region) ContentSize() float32 {
	lo, hi := r.contentSpan()
	return hi - lo
}

// Paused reports whether Tick is suspended.
func (r *Region) Paused() bool { return r.paused }

// SetPaused suspends or resumes Tick, including any programmatic move.
func (r *Region) SetPaused(paused bool) {
	if r.paused == paused {
		return
	}
	r.paused = paused
	if !r.move.custom {
		return
	}
	if paused {
		r.move.resume = r.move.state
		r.setState(StatePause)
	} else {
		r.setState(r.move.resume)
	}
}

// ============================================================================
// Listeners
// ============================================================================

// OnStateChanged subscribes to programmatic move state changes.
func (r *Region) OnStateChanged(fn func(MoveState)) (remove func()) { return r.onState.add(fn) }

// OnValueChanged subscribes to NormalizedPosition changes.
func (r *Region) OnValueChanged(fn func(float32)) (remove func()) { return r.onValue.add(fn) }

// OnSnapFinished subscribes to snap completion with the snapped item.
func (r *Region) OnSnapFinished(fn func(*Item)) (remove func()) { return r.onSnapFinished.add(fn) }

// OnSnapNearestChanged subscribes to the item a snap is approaching.
func (r *Region) OnSnapNearestChanged(fn func(*Item)) (remove func()) {
	return r.onSnapNearest.add(fn)
}

// OnItemInstantiated subscribes to items entering the window, before binding.
func (r *Region) OnItemInstantiated(fn func(*Item)) (remove func()) {
	return r.onInstantiated.add(fn)
}

// OnItemRecycled subscribes to items leaving the window.
func (r *Region) OnItemRecycled(fn func(*Item)) (remove func()) { return r.onRecycled.add(fn) }

// OnFilled subscribes to FillCells completion.
func (r *Region) OnFilled(fn func(*Region)) (remove func()) { return r.onFilled.add(fn) }

func (r *Region) setState(s MoveState) {
	r.move.state = s
	r.onState.fire(r, "OnStateChanged", s)
}

// ============================================================================
// Commands
// ============================================================================

// FillCells discards the window and refills it starting at offset, which
// counts from the anchored end for reversed directions. Velocity is reset and
// the content returns to its anchor.
func (r *Region) FillCells(offset int) {
	r.velocity = 0
	r.lastVelocity = 0
	if !r.opts.Loop {
		offset = max(0, min(offset, r.total))
	}
	r.recycleAll()

	start := offset
	if r.opts.Direction.Reverse() {
		start = r.total - offset
	}
	if cc := r.opts.CellCount; cc > 1 && start%cc != 0 {
		aligned := start - mod(start, cc)
		r.log.Warn().Int("offset", start).Int("aligned", aligned).Msg("grid fill offset is not line aligned")
		start = aligned
	}
	r.itemStart, r.itemEnd = start, start
	r.pos = 0
	r.applyContentPosition()

	view := r.ViewSize()
	reverse := r.opts.Direction.Reverse()
	grow, back := r.newItemAtEnd, r.newItemAtStart
	if reverse {
		grow, back = back, grow
	}
	filled := fillWith(grow, 0, view)
	if filled < view {
		// The list ran out before the view filled; complete it backward.
		fillWith(back, filled, view)
	}

	// Rest against the anchor edge, or against the far edge when the list
	// ended before filling the view.
	lo, hi := r.contentSpan()
	delta := -lo
	if reverse {
		delta = view - hi
		if lo+delta > 0 && hi-lo >= view {
			delta = -lo
		}
	} else if hi+delta < view && hi-lo >= view {
		delta = view - hi
	}
	r.setContentPosition(r.pos+delta, true)
	r.prevPos = r.pos
	r.onFilled.fire(r, "OnFilled", r)
}

func fillWith(add func() float32, filled, view float32) float32 {
	for guard := 0; filled < view && guard < maxWindowSteps; guard++ {
		size := add()
		if size <= 0 {
			break
		}
		filled += size
	}
	return filled
}

// RefreshCells rebinds every live item in place and recycles items at or
// beyond TotalCount.
func (r *Region) RefreshCells() {
	r.itemEnd = r.itemStart
	kept := r.items[:0]
	for _, it := range r.items {
		if r.opts.Loop || r.itemEnd < r.total {
			idx := r.itemEnd
			it.index = idx
			r.bind(it, idx)
			kept = append(kept, it)
			r.itemEnd++
			continue
		}
		r.recycleItem(it)
	}
	for i := len(kept); i < len(r.items); i++ {
		r.items[i] = nil
	}
	r.items = kept
	r.layout.Rebuild(r.content)
	r.updateItems()
}

// ClearCells recycles every live item and resets the window to 0/0. With
// clearPools the region's pools are destroyed too: the whole local registry,
// or, for a shared registry, the pools this region's templates resolve to.
func (r *Region) ClearCells(clearPools bool) {
	r.recycleAll()
	r.itemStart, r.itemEnd = 0, 0
	if !clearPools {
		return
	}
	if r.localPools {
		r.pools.RemoveAll()
		return
	}
	names := map[string]struct{}{r.templateName: {}}
	if r.templates != nil {
		for i := 0; i < r.total; i++ {
			if name := r.templates.TemplateName(i); name != "" {
				names[name] = struct{}{}
			}
		}
	}
	for name := range names {
		r.pools.Remove(name)
	}
}

// Close recycles the window and releases a local registry.
func (r *Region) Close() {
	r.StopMovement(0, false)
	r.SetScrollbar(nil)
	r.recycleAll()
	r.itemStart, r.itemEnd = 0, 0
	if r.localPools {
		r.pools.Close()
	}
}

// ============================================================================
// Frame
// ============================================================================

// Tick advances the region by dt seconds. It implements retained.Ticker.
func (r *Region) Tick(dt float32) {
	if r.paused || dt <= 0 {
		return
	}
	r.lastDT = dt
	if v := r.ViewSize(); v != r.prevView {
		r.prevView = v
		r.applyContentPosition()
		r.updateItems()
	}

	if r.move.custom {
		r.move.tweens.Tick(dt)
		r.tickMove(dt)
		r.publish(0)
		return
	}
	if !r.opts.EnableDrag {
		r.updateSnapMove(dt, false)
		r.publish(0)
		return
	}
	r.tickPhysics(dt)
}

// publish refreshes the scrollbar and fires OnValueChanged when the content
// moved or resized since the last publish.
func (r *Region) publish(offset float32) {
	lo, hi := r.contentSpan()
	span := [2]float32{lo, hi}
	if r.pos == r.prevPos && span == r.prevSpan {
		return
	}
	r.prevPos = r.pos
	r.prevSpan = span
	r.updateScrollbar(offset)
	r.onValue.fire(r, "OnValueChanged", r.NormalizedPosition())
}
