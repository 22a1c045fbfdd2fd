package scroll

// ItemSource binds logical data to item views. FillItemData runs every time
// an item enters the window or is rebound by RefreshCells, after the frame's
// geometry is final. For loop lists index is the raw, unwrapped index; use
// BoundIndex to map it into [0, TotalCount).
type ItemSource interface {
	FillItemData(item *Item, index int)
}

// TemplateProvider is an optional ItemSource extension that picks a template
// per index. An empty name falls back to the region's default template.
// Names resolve through the source itself when it implements
// retained.ResourceLoader, otherwise through Options.Loader.
type TemplateProvider interface {
	TemplateName(index int) string
}

// SizeProvider is an optional ItemSource extension that knows the main-axis
// size of items that are not live. Without it, unmeasured sizes are estimated
// from the live items.
type SizeProvider interface {
	ItemSize(index int) float32
}

// The bounce interfaces are optional ItemSource extensions that replace one
// phase of a programmatic move. Each is called once per frame while its phase
// is active and returns the new main-axis content position; the phase ends
// when the implementation calls done. A phase whose done is never called stalls.

// StartBouncer replaces the ramp-up phase.
type StartBouncer interface {
	StartBounce(r *Region, speed float32, done func()) float32
}

// MoveBouncer replaces the traversal phase.
type MoveBouncer interface {
	MoveBounce(r *Region, speed float32, done func()) float32
}

// EndBouncer replaces the settle phase. speed is the velocity at arrival.
type EndBouncer interface {
	EndBounce(r *Region, speed float32, done func()) float32
}

// SourceFunc adapts a function to ItemSource.
type SourceFunc func(item *Item, index int)

// FillItemData implements ItemSource.
func (f SourceFunc) FillItemData(item *Item, index int) { f(item, index) }
