package retained

import "sync"

// ============================================================================
// Node Slice Pooling
// ============================================================================
//
// Layout passes snapshot a content node's children every frame while items
// scroll in and out. Pooling the snapshot slices keeps that per-frame work
// allocation free.
//
// Usage:
//   children := acquireNodeSlice(len(n.children))
//   copy(children, n.children)
//   ... use children ...
//   releaseNodeSlice(children)

// nodeSlicePool pools []*Node slices to reduce allocations.
var nodeSlicePool = sync.Pool{
	New: func() interface{} {
		return make([]*Node, 0, 16)
	},
}

// acquireNodeSlice gets a node slice from the pool with len == n.
// Caller must call releaseNodeSlice when done.
func acquireNodeSlice(n int) []*Node {
	slice := nodeSlicePool.Get().([]*Node)

	if cap(slice) < n {
		nodeSlicePool.Put(slice[:0])
		return make([]*Node, n, n*2)
	}

	return slice[:n]
}

// releaseNodeSlice returns a node slice to the pool.
// The slice should not be used after calling this.
func releaseNodeSlice(slice []*Node) {
	if slice == nil {
		return
	}

	// Clear the slice to avoid holding references
	for i := range slice {
		slice[i] = nil
	}

	// Only pool slices up to a reasonable size to avoid memory bloat
	if cap(slice) <= 256 {
		nodeSlicePool.Put(slice[:0])
	}
}
