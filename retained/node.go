package retained

import "sync/atomic"

// NodeID uniquely identifies a node.
type NodeID uint64

var nextNodeID atomic.Uint64

func newNodeID() NodeID {
	return NodeID(nextNodeID.Add(1))
}

// Node is a retained scene node: a positioned box with a preferred size and
// ordered children. Nodes are owned by the frame loop goroutine and are not
// safe for concurrent mutation.
type Node struct {
	id       NodeID
	name     string
	position Vec2 // Local position within the parent
	size     Vec2 // Preferred size
	active   bool
	parent   *Node
	children []*Node
	data     any // Application payload (label, color, ...)

	source    *Node // Template this node was cloned from
	destroyed bool
}

// NewNode creates an active node with the given preferred size.
func NewNode(name string, width, height float32) *Node {
	return &Node{
		id:     newNodeID(),
		name:   name,
		size:   Vec2{width, height},
		active: true,
	}
}

// ID returns the node's unique identifier.
func (n *Node) ID() NodeID { return n.id }

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// SetName renames the node.
func (n *Node) SetName(name string) *Node {
	n.name = name
	return n
}

// Position returns the local position.
func (n *Node) Position() Vec2 { return n.position }

// SetPosition moves the node within its parent.
func (n *Node) SetPosition(p Vec2) *Node {
	n.position = p
	return n
}

// PreferredSize returns the size the node asks its layout for.
func (n *Node) PreferredSize() Vec2 { return n.size }

// SetPreferredSize changes the preferred size.
func (n *Node) SetPreferredSize(width, height float32) *Node {
	n.size = Vec2{width, height}
	return n
}

// Bounds returns the node's rect in its parent's space.
func (n *Node) Bounds() Rect {
	return Rect{X: n.position.X, Y: n.position.Y, Width: n.size.X, Height: n.size.Y}
}

// WorldPosition sums positions up to the root.
func (n *Node) WorldPosition() Vec2 {
	p := n.position
	for cur := n.parent; cur != nil; cur = cur.parent {
		p = p.Add(cur.position)
	}
	return p
}

// Active reports whether the node takes part in layout and drawing.
func (n *Node) Active() bool { return n.active }

// SetActive toggles participation in layout and drawing.
func (n *Node) SetActive(active bool) *Node {
	n.active = active
	return n
}

// Data returns the application payload.
func (n *Node) Data() any { return n.data }

// SetData attaches an application payload.
func (n *Node) SetData(v any) *Node {
	n.data = v
	return n
}

// Source returns the template the node was cloned from, if any.
func (n *Node) Source() *Node { return n.source }

// Destroyed reports whether an Instantiator destroyed the node.
func (n *Node) Destroyed() bool { return n.destroyed }

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node { return n.parent }

// ============================================================================
// Children
// ============================================================================

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// AddChild appends child, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) *Node {
	return n.InsertChild(len(n.children), child)
}

// InsertChild inserts child at index i, detaching it from any previous parent.
func (n *Node) InsertChild(i int, child *Node) *Node {
	if child == nil || child == n {
		return n
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	i = max(0, min(i, len(n.children)))
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	child.parent = n
	return n
}

// RemoveChild detaches child. It reports whether child was found.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return true
		}
	}
	return false
}

// IndexOf returns the position of child or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Clone deep-copies the node and its subtree. The copy has no parent and
// records n as its source.
func (n *Node) Clone() *Node {
	c := &Node{
		id:       newNodeID(),
		name:     n.name,
		position: n.position,
		size:     n.size,
		active:   n.active,
		data:     n.data,
		source:   n,
	}
	if len(n.children) > 0 {
		c.children = make([]*Node, 0, len(n.children))
		for _, child := range n.children {
			cc := child.Clone()
			cc.parent = c
			c.children = append(c.children, cc)
		}
	}
	return c
}
