package scroll

import (
	"github.com/agiangrant/listview/pool"
	"github.com/agiangrant/listview/retained"
)

// Item is one pooled item view. While live it is owned by a region's window;
// once recycled it belongs to its pool and may be handed to any region that
// spawns the same template.
type Item struct {
	node     *retained.Node
	template *retained.Node
	poolName string
	pool     *pool.ObjectPool[*Item]

	region *Region
	index  int

	// UserData is free for the binding layer.
	UserData any
}

// Node returns the item's scene node.
func (it *Item) Node() *retained.Node { return it.node }

// Index returns the logical index the item is bound to. Loop lists report raw indices.
func (it *Item) Index() int { return it.index }

// Region returns the region the item is live in, or nil when pooled.
func (it *Item) Region() *Region { return it.region }

// PoolName returns the name of the pool the item was spawned from.
func (it *Item) PoolName() string { return it.poolName }

// Size returns the preferred size of the item's node.
func (it *Item) Size() retained.Vec2 { return it.node.PreferredSize() }

// Width returns the preferred width.
func (it *Item) Width() float32 { return it.node.PreferredSize().X }

// Height returns the preferred height.
func (it *Item) Height() float32 { return it.node.PreferredSize().Y }

// MainSize returns the size along the owning region's scroll axis.
func (it *Item) MainSize() float32 {
	if it.region == nil {
		return it.Height()
	}
	return it.node.PreferredSize().Get(it.region.axis())
}

// Spacing returns the owning region's line spacing.
func (it *Item) Spacing() float32 {
	if it.region == nil {
		return 0
	}
	return it.region.opts.Spacing
}

// SizeWithSpacing returns MainSize plus Spacing.
func (it *Item) SizeWithSpacing() float32 {
	return it.MainSize() + it.Spacing()
}

// Recycle returns the item to its pool. The window is not updated; regions
// recycle through their own window operations.
func (it *Item) Recycle() bool {
	it.region = nil
	if it.pool == nil {
		return false
	}
	return it.pool.Recycle(it)
}

// OnSpawned implements pool.Spawned.
func (it *Item) OnSpawned() {
	it.node.SetActive(true)
}

// OnRecycled implements pool.Recycled.
func (it *Item) OnRecycled() {
	it.node.SetActive(false)
	it.region = nil
}

// NewItemRegistry returns a pool registry whose pools build items by
// instantiating the template's node. Share one between regions that spawn the
// same templates.
func NewItemRegistry(inst retained.Instantiator, mode pool.Mode, opts ...func(*pool.RegistryConfig[*Item])) *pool.Registry[*Item] {
	if inst == nil {
		inst = retained.CloneInstantiator{}
	}
	cfg := pool.RegistryConfig[*Item]{
		Mode: mode,
		Builder: func(tpl *Item) (*Item, error) {
			if tpl == nil {
				return nil, retained.ErrNoTemplate
			}
			n, err := inst.Instantiate(tpl.template, nil)
			if err != nil {
				return nil, err
			}
			n.SetActive(false)
			return &Item{node: n, template: tpl.template, poolName: tpl.poolName, index: -1}, nil
		},
		Destroy: func(it *Item) {
			if it != nil {
				inst.Destroy(it.node)
			}
		},
	}
	for _, o := range opts {
		o(&cfg)
	}
	return pool.NewRegistry(cfg)
}

// templateItem wraps a template node as the pool template.
func templateItem(name string, node *retained.Node) *Item {
	return &Item{template: node, poolName: name, index: -1}
}

// CanReclaim implements pool.Reclaimable. Live items are never taken back
// from a window, so a recovery-mode registry starves once every item is
// live. New rejects that mode in Options.
func (it *Item) CanReclaim() bool { return it.region == nil }
