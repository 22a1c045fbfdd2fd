package retained

// ============================================================================
// Layout / Measurement
// ============================================================================

// Layout positions the children of a content node and measures the result.
// All rects are in the content node's local space.
type Layout interface {
	// Rebuild positions every active child synchronously.
	Rebuild(content *Node)

	// ContentBounds returns the bounding box of all active children.
	ContentBounds(content *Node) Rect

	// ItemBounds returns the bounding box of one child.
	ItemBounds(item *Node) Rect
}

// StackLayout places active children one after another along Axis.
type StackLayout struct {
	Axis    Axis
	Spacing float32 // Gap between consecutive children

	// AnchorEnd makes the stack end at the origin instead of starting there,
	// so growth at the end pushes earlier children toward negative space.
	AnchorEnd bool
}

// Rebuild positions the children of content.
func (l *StackLayout) Rebuild(content *Node) {
	children := acquireNodeSlice(len(content.children))
	copy(children, content.children)
	defer releaseNodeSlice(children)

	var total float32
	n := 0
	for _, c := range children {
		if !c.active {
			continue
		}
		total += c.size.Get(l.Axis)
		n++
	}
	if n > 1 {
		total += l.Spacing * float32(n-1)
	}

	var cursor float32
	if l.AnchorEnd {
		cursor = -total
	}
	for _, c := range children {
		if !c.active {
			continue
		}
		c.position = Vec2{}.With(l.Axis, cursor)
		cursor += c.size.Get(l.Axis) + l.Spacing
	}
}

// ContentBounds returns the union of active child bounds.
func (l *StackLayout) ContentBounds(content *Node) Rect {
	return activeBounds(content)
}

// ItemBounds returns the child's own rect.
func (l *StackLayout) ItemBounds(item *Node) Rect {
	return item.Bounds()
}

// GridLayout places active children in lines of CellCount fixed-size cells.
// Lines stack along Axis; cells within a line run along the cross axis.
type GridLayout struct {
	Axis      Axis
	CellSize  Vec2
	CellCount int
	Spacing   Vec2
	AnchorEnd bool
}

// Rebuild sizes every active child to CellSize and positions it.
func (l *GridLayout) Rebuild(content *Node) {
	children := acquireNodeSlice(len(content.children))
	copy(children, content.children)
	defer releaseNodeSlice(children)

	perLine := max(1, l.CellCount)
	cross := AxisX
	if l.Axis == AxisX {
		cross = AxisY
	}

	n := 0
	for _, c := range children {
		if c.active {
			n++
		}
	}
	lines := (n + perLine - 1) / perLine
	lineExtent := l.CellSize.Get(l.Axis)
	lineGap := l.Spacing.Get(l.Axis)

	var total float32
	if lines > 0 {
		total = float32(lines)*lineExtent + float32(lines-1)*lineGap
	}
	var start float32
	if l.AnchorEnd {
		start = -total
	}

	i := 0
	for _, c := range children {
		if !c.active {
			continue
		}
		line, cell := i/perLine, i%perLine
		c.size = l.CellSize
		pos := Vec2{}.With(l.Axis, start+float32(line)*(lineExtent+lineGap))
		pos = pos.With(cross, float32(cell)*(l.CellSize.Get(cross)+l.Spacing.Get(cross)))
		c.position = pos
		i++
	}
}

// ContentBounds returns the union of active child bounds.
func (l *GridLayout) ContentBounds(content *Node) Rect {
	return activeBounds(content)
}

// ItemBounds returns the child's own rect.
func (l *GridLayout) ItemBounds(item *Node) Rect {
	return item.Bounds()
}

func activeBounds(content *Node) Rect {
	var out Rect
	first := true
	for _, c := range content.children {
		if !c.active {
			continue
		}
		if first {
			out = c.Bounds()
			first = false
			continue
		}
		out = out.Union(c.Bounds())
	}
	return out
}
