// Package loomtest provides helpers for testing code that builds or
// mutates loom documents through edit streams.
//
// A Harness bundles a document, an interpreter, and the trigger
// plumbing so a test can apply streams, dispatch native events, and
// assert on the resulting tree without wiring the pieces by hand.
package loomtest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/loomui/loom/pkg/dom"
	"github.com/loomui/loom/pkg/edit"
	"github.com/loomui/loom/pkg/interp"
	"github.com/loomui/loom/pkg/trigger"
)

// Harness is a self-contained document under test.
type Harness struct {
	Doc       *dom.Document
	Interp    *interp.Interpreter
	Delegator *trigger.Delegator
	Queue     *trigger.Queue

	seq uint64
}

// New creates a harness with a quiet logger and a "body" root.
//
// Example:
//
//	h := loomtest.New()
//	h.MustApply(t,
//	    edit.PushRoot(0),
//	    edit.CreateElement("div", 1),
//	    edit.AppendChildren(1),
//	    edit.PopRoot(),
//	)
func New() *Harness {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	doc := dom.NewDocument("body")
	queue := trigger.NewQueue()
	delegator := trigger.NewDelegator(doc.Root(), queue, logger)
	return &Harness{
		Doc:       doc,
		Interp:    interp.New(doc, delegator, logger),
		Delegator: delegator,
		Queue:     queue,
	}
}

// Apply wraps the edits in a stream with the next sequence number and
// applies it.
func (h *Harness) Apply(edits ...edit.Edit) error {
	h.seq++
	return h.Interp.Apply(&edit.Stream{Seq: h.seq, Edits: edits})
}

// MustApply applies the edits and fails the test on error.
func (h *Harness) MustApply(t *testing.T, edits ...edit.Edit) {
	t.Helper()
	if err := h.Apply(edits...); err != nil {
		t.Fatalf("apply: %v", err)
	}
}

// Node resolves a registered node id, failing the test if unknown.
func (h *Harness) Node(t *testing.T, id interp.NodeID) *dom.Node {
	t.Helper()
	node, err := h.Interp.Registry().Lookup(id)
	if err != nil {
		t.Fatalf("lookup %d: %v", id, err)
	}
	return node
}

// Dispatch delivers a native event to the node registered under id,
// bubbling it toward the root. The event's Target is set to the node.
func (h *Harness) Dispatch(t *testing.T, id interp.NodeID, ev *dom.Event) {
	t.Helper()
	ev.Target = h.Node(t, id)
	h.Doc.DispatchEvent(ev)
}

// NextTrigger pops the next queued trigger, failing the test if the
// queue is empty.
func (h *Harness) NextTrigger(t *testing.T) trigger.Trigger {
	t.Helper()
	tr, ok := h.Queue.TryNext()
	if !ok {
		t.Fatal("trigger queue is empty")
	}
	return tr
}

// ExpectNoTrigger fails the test if a trigger is queued.
func (h *Harness) ExpectNoTrigger(t *testing.T) {
	t.Helper()
	if tr, ok := h.Queue.TryNext(); ok {
		t.Fatalf("unexpected trigger: %+v", tr)
	}
}

// ExpectText asserts on the text content of a registered node.
func (h *Harness) ExpectText(t *testing.T, id interp.NodeID, want string) {
	t.Helper()
	if got := h.Node(t, id).TextContent(); got != want {
		t.Errorf("node %d text = %q, want %q", id, got, want)
	}
}

// ExpectAttribute asserts that a registered node carries an attribute
// with the given value.
func (h *Harness) ExpectAttribute(t *testing.T, id interp.NodeID, name, want string) {
	t.Helper()
	got, ok := h.Node(t, id).Attribute(name)
	if !ok {
		t.Errorf("node %d missing attribute %q", id, name)
		return
	}
	if got != want {
		t.Errorf("node %d attribute %s = %q, want %q", id, name, got, want)
	}
}

// ExpectChildTags asserts the tags of a registered node's element
// children, in order. Text and comment children are skipped.
func (h *Harness) ExpectChildTags(t *testing.T, id interp.NodeID, want ...string) {
	t.Helper()
	var got []string
	for _, c := range h.Node(t, id).Children() {
		if c.IsElement() {
			got = append(got, c.Tag)
		}
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("node %d child tags = %v, want %v", id, got, want)
	}
}
