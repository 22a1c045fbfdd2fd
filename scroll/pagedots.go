package scroll

// PageDots is a page indicator over a snapping region. It follows the item
// each snap approaches and turns dot selection into ScrollGrid steps.
type PageDots struct {
	region  *Region
	count   int
	current int
	unsub   func()

	// OnChange is called with the new current dot.
	OnChange func(dot int)
}

// NewPageDots attaches count dots to r. Zero count uses r's TotalCount.
func NewPageDots(r *Region, count int) *PageDots {
	if count <= 0 {
		count = r.TotalCount()
	}
	d := &PageDots{region: r, count: max(1, count)}
	d.unsub = r.OnSnapNearestChanged(func(it *Item) { d.set(mod(it.Index(), d.count)) })
	return d
}

// Count returns the number of dots.
func (d *PageDots) Count() int { return d.count }

// Current returns the selected dot.
func (d *PageDots) Current() int { return d.current }

// Select scrolls toward dot i, one snap step per call, and reports whether a
// step was started.
func (d *PageDots) Select(i int) bool {
	i = mod(i, d.count)
	if i == d.current {
		return false
	}
	forward := i > d.current
	if d.region.Loop() {
		// Shortest way around.
		ahead := mod(i-d.current, d.count)
		forward = ahead <= d.count-ahead
	}
	before := d.region.SnapNearestIndex()
	d.region.ScrollGrid(forward, false)
	return d.region.SnapNearestIndex() != before
}

// Close detaches the dots from the region.
func (d *PageDots) Close() {
	if d.unsub != nil {
		d.unsub()
		d.unsub = nil
	}
}

func (d *PageDots) set(dot int) {
	if dot == d.current {
		return
	}
	d.current = dot
	if d.OnChange != nil {
		d.OnChange(dot)
	}
}
