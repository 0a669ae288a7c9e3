package interp

import (
	"fmt"

	"github.com/loomui/loom/pkg/dom"
)

// NodeID is the opaque 64-bit node identity assigned by the upstream
// diff engine. IDs carry no ordering and are never reused while the
// node is live; reuse-after-remove is the diff engine's concern.
type NodeID uint64

// Registry maps NodeIDs to live native node handles. It provides O(1)
// lookup and safe handle replacement; it is exclusively owned by the
// interpreter on the tree-owning goroutine.
type Registry struct {
	nodes map[NodeID]*dom.Node
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[NodeID]*dom.Node, 1024)}
}

// Register inserts or overwrites the mapping for id. The first write
// models a create; later writes model reuse-at-same-id after a replace.
func (r *Registry) Register(id NodeID, node *dom.Node) {
	r.nodes[id] = node
}

// Lookup resolves id to its node handle. A missing entry is a hard
// failure: it means the edit stream and the registry have diverged.
func (r *Registry) Lookup(id NodeID) (*dom.Node, error) {
	node, ok := r.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNodeID, id)
	}
	return node, nil
}

// Remove drops the mapping for id. The id itself is not recycled.
func (r *Registry) Remove(id NodeID) {
	delete(r.nodes, id)
}

// Len returns the number of live mappings.
func (r *Registry) Len() int {
	return len(r.nodes)
}
