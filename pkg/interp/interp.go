// Package interp applies edit streams produced by an external diff
// engine against a live native tree.
//
// The interpreter owns the node registry (opaque id to native handle)
// and the builder stack, applies each stream transactionally in
// instruction order, and aborts loudly on any invariant violation:
// partial application leaves the registry and tree mutually
// inconsistent, so the caller must treat it as corruption and resync.
package interp

import (
	"fmt"
	"log/slog"

	"github.com/loomui/loom/pkg/dom"
	"github.com/loomui/loom/pkg/edit"
	"github.com/loomui/loom/pkg/trigger"
)

// RootID is the registry entry created for the document root when the
// interpreter is constructed. The diff engine addresses the root
// through it.
const RootID NodeID = 0

// textMarker is the comment text of the non-rendering marker inserted
// between adjacent text siblings. Native trees may silently merge
// neighboring text nodes, which would break the one-entry-per-node
// registry invariant.
const textMarker = "loom"

// Interpreter replays edit streams against a document. It must only be
// used from the goroutine that owns the document.
type Interpreter struct {
	doc       *dom.Document
	registry  *Registry
	stack     *Stack
	delegator *trigger.Delegator
	logger    *slog.Logger

	lastWasText bool
}

// New creates an interpreter for doc, delivering event reservations to
// delegator. The document root is registered under RootID. A nil
// logger falls back to slog.Default().
func New(doc *dom.Document, delegator *trigger.Delegator, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	registry := NewRegistry()
	registry.Register(RootID, doc.Root())
	return &Interpreter{
		doc:       doc,
		registry:  registry,
		stack:     NewStack(),
		delegator: delegator,
		logger:    logger,
	}
}

// Registry exposes the interpreter's node registry.
func (in *Interpreter) Registry() *Registry { return in.registry }

// Stack exposes the interpreter's builder stack.
func (in *Interpreter) Stack() *Stack { return in.stack }

// Apply replays one edit stream in instruction order. On the first
// failing instruction it abandons the rest of the stream, clears the
// builder stack, and returns an *ApplyError; nothing is rolled back.
// A non-empty stack after a fully applied stream is also an error.
func (in *Interpreter) Apply(stream *edit.Stream) error {
	if err := in.ApplyEdits(stream.Seq, stream.Edits); err != nil {
		return err
	}

	if n := in.stack.Len(); n != 0 {
		in.logger.Error("builder stack residue after stream",
			"seq", stream.Seq, "residue", n)
		in.stack.Clear()
		return &ApplyError{
			Seq:   stream.Seq,
			Index: len(stream.Edits),
			Err:   fmt.Errorf("%w: %d nodes", ErrStackResidue, n),
		}
	}

	in.logger.Debug("edit stream applied",
		"seq", stream.Seq, "edits", len(stream.Edits))
	return nil
}

// ApplyEdits replays edits without enforcing the empty-stack-at-end
// convention. It is the building block for Apply and for callers that
// interleave their own stack management across batches.
func (in *Interpreter) ApplyEdits(seq uint64, edits []edit.Edit) error {
	for i := range edits {
		e := &edits[i]
		if err := in.apply(e); err != nil {
			in.logger.Error("edit stream aborted",
				"seq", seq, "index", i, "op", e.Op.String(), "error", err)
			in.stack.Clear()
			return &ApplyError{Seq: seq, Index: i, Op: e.Op, Err: err}
		}
	}
	return nil
}

func (in *Interpreter) apply(e *edit.Edit) error {
	switch e.Op {
	case edit.OpPushRoot:
		return in.pushRoot(NodeID(e.ID))
	case edit.OpPopRoot:
		_, err := in.stack.Pop()
		return err
	case edit.OpCreateElement:
		return in.createElement(e.Tag, e.Namespace, NodeID(e.ID))
	case edit.OpCreateTextNode:
		return in.createTextNode(e.Text, NodeID(e.ID))
	case edit.OpCreatePlaceholder:
		return in.createPlaceholder(NodeID(e.ID))
	case edit.OpAppendChildren:
		return in.appendChildren(int(e.Count))
	case edit.OpReplaceWith:
		return in.replaceWith(int(e.Count))
	case edit.OpRemove:
		return in.remove()
	case edit.OpRemoveAllChildren:
		return in.removeAllChildren()
	case edit.OpSetText:
		return in.setText(e.Text)
	case edit.OpSetAttribute:
		return in.setAttribute(e.Name, e.Value, e.Namespace)
	case edit.OpRemoveAttribute:
		return in.removeAttribute(e.Name)
	case edit.OpNewEventListener:
		return in.newEventListener(e.Name, e.ComponentID, e.ID)
	case edit.OpRemoveEventListener:
		in.delegator.Unregister(e.Name)
		return nil
	default:
		return fmt.Errorf("%w: 0x%02x", ErrInvalidOp, uint8(e.Op))
	}
}

func (in *Interpreter) pushRoot(id NodeID) error {
	node, err := in.registry.Lookup(id)
	if err != nil {
		return err
	}
	in.stack.Push(node)
	return nil
}

func (in *Interpreter) createElement(tag, namespace string, id NodeID) error {
	var el *dom.Node
	if namespace != "" {
		el = in.doc.CreateElementNS(tag, namespace)
	} else {
		el = in.doc.CreateElement(tag)
	}
	in.registry.Register(id, el)
	in.stack.Push(el)
	return nil
}

func (in *Interpreter) createTextNode(text string, id NodeID) error {
	t := in.doc.CreateTextNode(text)
	in.registry.Register(id, t)
	in.stack.Push(t)
	return nil
}

// createPlaceholder creates an invisible element usable as a position
// marker. The loom-placeholder attribute identifies it and keeps it
// non-rendering.
func (in *Interpreter) createPlaceholder(id NodeID) error {
	el := in.doc.CreateElement("pre")
	el.SetAttribute("loom-placeholder", "")
	in.registry.Register(id, el)
	in.stack.Push(el)
	return nil
}

// appendChildren pops the n most recently pushed nodes and appends them,
// in original push order, as children of the node now at stack depth n.
// The parent stays on the stack.
func (in *Interpreter) appendChildren(n int) error {
	parent, err := in.stack.PeekAt(n)
	if err != nil {
		return err
	}

	// Pop into push order.
	children := make([]*dom.Node, n)
	for i := n - 1; i >= 0; i-- {
		children[i], err = in.stack.Pop()
		if err != nil {
			return err
		}
	}

	for _, child := range children {
		if child.IsText() {
			if in.lastWasText {
				parent.AppendChild(in.doc.CreateComment(textMarker))
			}
			in.lastWasText = true
		} else {
			in.lastWasText = false
		}
		parent.AppendChild(child)
	}
	return nil
}

// replaceWith pops n new nodes plus the old node directly under them,
// substitutes the old node with the new ones at its tree position, and
// pushes the first new node back as the position anchor.
func (in *Interpreter) replaceWith(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrUnsupportedReplaceArity, n)
	}

	newNodes := make([]*dom.Node, n)
	var err error
	for i := n - 1; i >= 0; i-- {
		newNodes[i], err = in.stack.Pop()
		if err != nil {
			return err
		}
	}
	oldNode, err := in.stack.Pop()
	if err != nil {
		return err
	}

	parent := oldNode.Parent()
	if parent == nil {
		return fmt.Errorf("interp: replace target %s is detached", oldNode.Tag)
	}
	for _, nn := range newNodes {
		parent.InsertBefore(nn, oldNode)
	}
	oldNode.Remove()

	in.stack.Push(newNodes[0])
	return nil
}

func (in *Interpreter) remove() error {
	node, err := in.stack.Pop()
	if err != nil {
		return err
	}
	node.Remove()
	return nil
}

func (in *Interpreter) removeAllChildren() error {
	node, err := in.stack.Top()
	if err != nil {
		return err
	}
	node.RemoveChildren()
	return nil
}

func (in *Interpreter) setText(text string) error {
	node, err := in.stack.Top()
	if err != nil {
		return err
	}
	node.SetTextContent(text)
	return nil
}

func (in *Interpreter) setAttribute(name, value, namespace string) error {
	node, err := in.stack.Top()
	if err != nil {
		return err
	}

	if name == "class" {
		// SVG class lives on the attribute; HTML class goes through
		// the className fast path.
		if namespace == dom.SVGNamespace {
			node.SetAttribute("class", value)
		} else {
			node.SetClassName(value)
		}
		return nil
	}

	node.SetAttribute(name, value)
	return nil
}

// removeAttribute removes an attribute from the top node. Volatile
// attributes (a live input's value/checked, an option's selected) are
// also reset through the property setter: removing the attribute alone
// does not reset live widget state.
func (in *Interpreter) removeAttribute(name string) error {
	node, err := in.stack.Top()
	if err != nil {
		return err
	}

	node.RemoveAttribute(name)

	switch name {
	case "value":
		node.SetValue("")
	case "checked":
		node.SetChecked(false)
	case "selected":
		node.SetSelected(false)
	}
	return nil
}

func (in *Interpreter) newEventListener(event string, componentID, nodeID uint64) error {
	node, err := in.stack.Top()
	if err != nil {
		return err
	}
	if !node.IsElement() {
		return fmt.Errorf("interp: event listener target is not an element: %s", node.Kind)
	}
	in.delegator.Register(event, componentID, nodeID, node)
	return nil
}
