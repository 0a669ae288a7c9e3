package interp

import (
	"fmt"

	"github.com/loomui/loom/pkg/dom"
)

// Stack is the builder stack: scratch space holding the nodes most
// recently produced or pushed while interpreting an edit stream. It is
// the only way edits reference "the node(s) just produced".
//
// By convention the stack is empty after a full stream has been
// applied; residue indicates interpreter/diff-engine desynchronization.
type Stack struct {
	list []*dom.Node
}

// NewStack creates a stack with a small initial capacity.
func NewStack() *Stack {
	return &Stack{list: make([]*dom.Node, 0, 10)}
}

// Push appends a node.
func (s *Stack) Push(node *dom.Node) {
	s.list = append(s.list, node)
}

// Pop removes and returns the most recently pushed node. Popping an
// empty stack is a fatal interpreter invariant violation.
func (s *Stack) Pop() (*dom.Node, error) {
	if len(s.list) == 0 {
		return nil, ErrStackUnderflow
	}
	node := s.list[len(s.list)-1]
	s.list = s.list[:len(s.list)-1]
	return node, nil
}

// Top returns the most recently pushed node without removing it.
func (s *Stack) Top() (*dom.Node, error) {
	if len(s.list) == 0 {
		return nil, fmt.Errorf("%w: top of empty stack", ErrStackUnderflow)
	}
	return s.list[len(s.list)-1], nil
}

// PeekAt returns the node at depth from the top: depth 0 is the top,
// depth 1 the node under it, and so on.
func (s *Stack) PeekAt(depth int) (*dom.Node, error) {
	idx := len(s.list) - 1 - depth
	if idx < 0 {
		return nil, fmt.Errorf("%w: peek at depth %d with %d nodes",
			ErrStackUnderflow, depth, len(s.list))
	}
	return s.list[idx], nil
}

// Len returns the number of stacked nodes.
func (s *Stack) Len() int {
	return len(s.list)
}

// Clear drops all stacked nodes.
func (s *Stack) Clear() {
	s.list = s.list[:0]
}
