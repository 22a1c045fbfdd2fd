package retained

import (
	"errors"
	"sync"
)

// ErrNoTemplate is returned when instantiating from a nil template.
var ErrNoTemplate = errors.New("retained: no template")

// Instantiator produces and destroys visual instances.
type Instantiator interface {
	// Instantiate creates a copy of template parented under parent (which may be nil).
	Instantiate(template *Node, parent *Node) (*Node, error)

	// Destroy detaches and releases n.
	Destroy(n *Node)
}

// CloneInstantiator instantiates by deep-copying the template.
type CloneInstantiator struct{}

// Instantiate implements Instantiator.
func (CloneInstantiator) Instantiate(template *Node, parent *Node) (*Node, error) {
	if template == nil {
		return nil, ErrNoTemplate
	}
	n := template.Clone()
	if parent != nil {
		parent.AddChild(n)
	}
	return n, nil
}

// Destroy implements Instantiator.
func (CloneInstantiator) Destroy(n *Node) {
	if n == nil {
		return
	}
	if p := n.Parent(); p != nil {
		p.RemoveChild(n)
	}
	n.active = false
	n.destroyed = true
}

// ResourceLoader resolves templates by name.
type ResourceLoader interface {
	Load(name string) (*Node, bool)
}

// Catalog is a map-backed ResourceLoader.
type Catalog struct {
	mu    sync.RWMutex
	items map[string]*Node
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{items: make(map[string]*Node)}
}

// Register stores template under name, replacing any previous entry.
func (c *Catalog) Register(name string, template *Node) *Catalog {
	c.mu.Lock()
	c.items[name] = template
	c.mu.Unlock()
	return c
}

// Load implements ResourceLoader.
func (c *Catalog) Load(name string) (*Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.items[name]
	return n, ok
}
