package scroll

import (
	"fmt"

	"github.com/agiangrant/listview/retained"
)

// ============================================================================
// Binders
// ============================================================================

// Binder binds one item view to data records. A binder is created the first
// time its item is filled and lives as long as the item.
type Binder[D any] interface {
	// Initialize attaches the binder to its item.
	Initialize(item *Item)
	// Bind shows data, the record at the bounded index.
	Bind(data D, index int)
	// Reset clears what Bind showed. It runs when the item is recycled or
	// its index has no record.
	Reset()
	// Release detaches the binder for good.
	Release()
}

// Controller feeds a region from a slice, one Binder per item view. Its zero
// value is ready: pass it to New as the ItemSource, then call Initialize.
type Controller[D any] struct {
	region    *Region
	newBinder func() Binder[D]
	data      []D
	binders   map[*Item]Binder[D]
	unsub     []func()
}

// Initialize attaches c to r, sizes the list to data and fills the window.
func (c *Controller[D]) Initialize(r *Region, newBinder func() Binder[D], data []D) {
	c.Release()
	c.region = r
	c.newBinder = newBinder
	c.data = data
	c.binders = make(map[*Item]Binder[D])
	c.unsub = append(c.unsub, r.OnItemRecycled(func(it *Item) {
		if b, ok := c.binders[it]; ok {
			b.Reset()
		}
	}))
	r.SetTotalCount(len(data))
	r.FillCells(0)
}

// ResetData replaces the records and rebinds the live window in place.
func (c *Controller[D]) ResetData(data []D) {
	c.data = data
	if c.region == nil {
		return
	}
	c.region.SetTotalCount(len(data))
	c.region.RefreshCells()
}

// Data returns the current records.
func (c *Controller[D]) Data() []D { return c.data }

// Region returns the region c is attached to.
func (c *Controller[D]) Region() *Region { return c.region }

// Binder returns the binder of item, or nil when it was never filled.
func (c *Controller[D]) Binder(item *Item) Binder[D] {
	return c.binders[item]
}

// Release releases every binder and detaches c from its region.
func (c *Controller[D]) Release() {
	for _, fn := range c.unsub {
		fn()
	}
	c.unsub = nil
	for it, b := range c.binders {
		b.Release()
		delete(c.binders, it)
	}
	c.region = nil
}

// FillItemData implements ItemSource.
func (c *Controller[D]) FillItemData(item *Item, index int) {
	if c.newBinder == nil {
		return
	}
	b, ok := c.binders[item]
	if !ok {
		b = c.newBinder()
		b.Initialize(item)
		c.binders[item] = b
	}
	idx, ok := c.record(index)
	if !ok {
		b.Reset()
		return
	}
	b.Bind(c.data[idx], idx)
}

// record maps a raw region index to a record index.
func (c *Controller[D]) record(index int) (int, bool) {
	if c.region != nil && c.region.Loop() {
		index = BoundIndex(index, len(c.data))
	}
	if index < 0 || index >= len(c.data) {
		return 0, false
	}
	return index, true
}

// ============================================================================
// Template Selection
// ============================================================================

// ListController is a Controller whose records pick their own template.
// ItemProvider maps a record to a template key and AddTemplate maps keys to
// templates loaded through Loader.
type ListController[D any] struct {
	Controller[D]

	ItemProvider func(index int, data D) string
	Loader       retained.ResourceLoader

	names     map[string]string
	templates map[string]*retained.Node
}

// AddTemplate registers the template called name under key.
func (l *ListController[D]) AddTemplate(key, name string) error {
	if l.Loader == nil {
		return fmt.Errorf("add template %q: %w", key, ErrNoTemplate)
	}
	tpl, ok := l.Loader.Load(name)
	if !ok || tpl == nil {
		return fmt.Errorf("add template %q: %w: %q not found", key, ErrNoTemplate, name)
	}
	if l.names == nil {
		l.names = make(map[string]string)
		l.templates = make(map[string]*retained.Node)
	}
	l.names[key] = name
	l.templates[name] = tpl
	return nil
}

// TemplateName implements TemplateProvider.
func (l *ListController[D]) TemplateName(index int) string {
	if l.ItemProvider == nil {
		return ""
	}
	idx, ok := l.record(index)
	if !ok {
		return ""
	}
	return l.names[l.ItemProvider(idx, l.data[idx])]
}

// Load implements retained.ResourceLoader for the registered templates.
func (l *ListController[D]) Load(name string) (*retained.Node, bool) {
	if tpl, ok := l.templates[name]; ok {
		return tpl, true
	}
	if l.Loader != nil {
		return l.Loader.Load(name)
	}
	return nil, false
}
