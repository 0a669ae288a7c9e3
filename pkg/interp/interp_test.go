package interp

import (
	"errors"
	"testing"

	"github.com/loomui/loom/pkg/dom"
	"github.com/loomui/loom/pkg/edit"
	"github.com/loomui/loom/pkg/trigger"
)

func newTestInterp(t *testing.T) (*Interpreter, *dom.Document, *trigger.Queue) {
	t.Helper()
	doc := dom.NewDocument("body")
	queue := trigger.NewQueue()
	delegator := trigger.NewDelegator(doc.Root(), queue, nil)
	return New(doc, delegator, nil), doc, queue
}

func apply(t *testing.T, in *Interpreter, edits ...edit.Edit) {
	t.Helper()
	if err := in.Apply(&edit.Stream{Seq: 1, Edits: edits}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
}

func TestCreateAndAppend(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	// div with one span child, both mounted under the root.
	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateElement("div", 1),
		edit.CreateElement("span", 2),
		edit.AppendChildren(1),
		edit.AppendChildren(1),
		edit.PopRoot(),
	)

	kids := doc.Root().Children()
	if len(kids) != 1 || kids[0].Tag != "div" {
		t.Fatalf("root children = %v, want [div]", kids)
	}
	if inner := kids[0].Children(); len(inner) != 1 || inner[0].Tag != "span" {
		t.Fatalf("div children = %v, want [span]", inner)
	}

	for _, id := range []NodeID{1, 2} {
		if _, err := in.Registry().Lookup(id); err != nil {
			t.Errorf("Lookup(%d): %v", id, err)
		}
	}
}

func TestAppendChildrenOrder(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateElement("a", 1),
		edit.CreateElement("b", 2),
		edit.CreateElement("c", 3),
		edit.AppendChildren(3),
		edit.PopRoot(),
	)

	kids := doc.Root().Children()
	want := []string{"a", "b", "c"}
	if len(kids) != len(want) {
		t.Fatalf("got %d children, want %d", len(kids), len(want))
	}
	for i, tag := range want {
		if kids[i].Tag != tag {
			t.Errorf("child %d = %q, want %q (push order must be preserved)", i, kids[i].Tag, tag)
		}
	}
}

func TestAppendChildrenZero(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.AppendChildren(0),
		edit.PopRoot(),
	)

	if len(doc.Root().Children()) != 0 {
		t.Errorf("AppendChildren(0) mutated the tree")
	}
}

func TestConsecutiveTextNodesGetMarkers(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateTextNode("one", 1),
		edit.CreateTextNode("two", 2),
		edit.CreateTextNode("three", 3),
		edit.AppendChildren(3),
		edit.PopRoot(),
	)

	kids := doc.Root().Children()
	// text, marker, text, marker, text
	if len(kids) != 5 {
		t.Fatalf("got %d children, want 5 (text/marker alternation)", len(kids))
	}
	for i, k := range kids {
		wantText := i%2 == 0
		if k.IsText() != wantText {
			t.Errorf("child %d kind = %v, want text=%v", i, k.Kind, wantText)
		}
	}
	// No two text nodes may end up adjacent.
	for i := 1; i < len(kids); i++ {
		if kids[i].IsText() && kids[i-1].IsText() {
			t.Errorf("adjacent text nodes at %d and %d", i-1, i)
		}
	}
}

func TestTextMarkerFlagResetsOnElement(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateTextNode("one", 1),
		edit.CreateElement("hr", 2),
		edit.CreateTextNode("two", 3),
		edit.AppendChildren(3),
		edit.PopRoot(),
	)

	// Element between the text nodes; no marker needed.
	kids := doc.Root().Children()
	if len(kids) != 3 {
		t.Fatalf("got %d children, want 3", len(kids))
	}
}

func TestSetText(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateElement("p", 1),
		edit.SetText("hello"),
		edit.AppendChildren(1),
		edit.PopRoot(),
	)

	p := doc.Root().Children()[0]
	if got := p.TextContent(); got != "hello" {
		t.Errorf("TextContent = %q, want %q", got, "hello")
	}
}

func TestSetAttributeClass(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateElement("div", 1),
		edit.SetAttribute("class", "old"),
		edit.SetAttribute("class", "foo"),
		edit.AppendChildren(1),
		edit.PopRoot(),
	)

	div := doc.Root().Children()[0]
	if got := div.ClassName(); got != "foo" {
		t.Errorf("class = %q, want %q (prior value must be overwritten)", got, "foo")
	}
}

func TestSetAttributeSVGClass(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateElementNS("circle", 1, dom.SVGNamespace),
		edit.SetAttributeNS("class", "ring", dom.SVGNamespace),
		edit.AppendChildren(1),
		edit.PopRoot(),
	)

	circle := doc.Root().Children()[0]
	if v, _ := circle.Attribute("class"); v != "ring" {
		t.Errorf("svg class attribute = %q, want %q", v, "ring")
	}
}

func TestRemoveAttributeVolatile(t *testing.T) {
	tests := []struct {
		name  string
		attr  string
		check func(t *testing.T, n *dom.Node)
	}{
		{"value", "value", func(t *testing.T, n *dom.Node) {
			if n.Value() != "" {
				t.Errorf("value property = %q, want empty", n.Value())
			}
		}},
		{"checked", "checked", func(t *testing.T, n *dom.Node) {
			if n.Checked() {
				t.Errorf("checked property still true")
			}
		}},
		{"selected", "selected", func(t *testing.T, n *dom.Node) {
			if n.Selected() {
				t.Errorf("selected property still true")
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, doc, _ := newTestInterp(t)

			apply(t, in,
				edit.PushRoot(uint64(RootID)),
				edit.CreateElement("input", 1),
				edit.AppendChildren(1),
				edit.PopRoot(),
			)

			input := doc.Root().Children()[0]
			input.SetValue("live")
			input.SetChecked(true)
			input.SetSelected(true)

			// The attribute was never set; removal must still reset
			// the live property.
			apply(t, in,
				edit.PushRoot(1),
				edit.RemoveAttribute(tc.attr),
				edit.PopRoot(),
			)
			tc.check(t, input)
		})
	}
}

func TestReplaceWithSingle(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateElement("span", 1),
		edit.CreateElement("i", 2),
		edit.AppendChildren(2),
		edit.PopRoot(),
	)

	apply(t, in,
		edit.PushRoot(1),
		edit.CreateElement("b", 3),
		edit.ReplaceWith(1),
		edit.PopRoot(),
	)

	kids := doc.Root().Children()
	if len(kids) != 2 || kids[0].Tag != "b" || kids[1].Tag != "i" {
		t.Fatalf("children after replace = %v, want [b i]", kids)
	}
}

func TestReplaceWithMultiple(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateElement("span", 1),
		edit.AppendChildren(1),
		edit.PopRoot(),
	)

	// One old node replaced by three new ones, in push order.
	apply(t, in,
		edit.PushRoot(1),
		edit.CreateElement("a", 2),
		edit.CreateElement("b", 3),
		edit.CreateElement("c", 4),
		edit.ReplaceWith(3),
		edit.PopRoot(),
	)

	kids := doc.Root().Children()
	want := []string{"a", "b", "c"}
	if len(kids) != 3 {
		t.Fatalf("got %d children, want 3", len(kids))
	}
	for i, tag := range want {
		if kids[i].Tag != tag {
			t.Errorf("child %d = %q, want %q", i, kids[i].Tag, tag)
		}
	}
}

func TestReplaceWithZeroFails(t *testing.T) {
	in, _, _ := newTestInterp(t)

	err := in.Apply(&edit.Stream{Seq: 7, Edits: []edit.Edit{
		edit.PushRoot(uint64(RootID)),
		edit.ReplaceWith(0),
	}})
	if !errors.Is(err, ErrUnsupportedReplaceArity) {
		t.Fatalf("err = %v, want ErrUnsupportedReplaceArity", err)
	}

	var ae *ApplyError
	if !errors.As(err, &ae) || ae.Index != 1 || ae.Op != edit.OpReplaceWith {
		t.Errorf("ApplyError = %+v, want index 1 op ReplaceWith", ae)
	}
}

func TestRemoveEdit(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateElement("div", 1),
		edit.AppendChildren(1),
		edit.PopRoot(),
	)

	apply(t, in,
		edit.PushRoot(1),
		edit.Remove(),
	)

	if len(doc.Root().Children()) != 0 {
		t.Errorf("node still attached after Remove")
	}
}

func TestRemoveAllChildrenEdit(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateElement("a", 1),
		edit.CreateElement("b", 2),
		edit.AppendChildren(2),
		edit.RemoveAllChildren(),
		edit.PopRoot(),
	)

	if len(doc.Root().Children()) != 0 {
		t.Errorf("children remain after RemoveAllChildren")
	}
}

func TestUnknownNodeIDAborts(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	err := in.Apply(&edit.Stream{Seq: 3, Edits: []edit.Edit{
		edit.PushRoot(99), // Never registered
		edit.CreateElement("div", 1),
		edit.AppendChildren(1),
	}})

	if !errors.Is(err, ErrUnknownNodeID) {
		t.Fatalf("err = %v, want ErrUnknownNodeID", err)
	}
	// Remaining instructions must not have been applied.
	if len(doc.Root().Children()) != 0 {
		t.Errorf("edits after the failure were applied")
	}
	if in.Stack().Len() != 0 {
		t.Errorf("stack not cleared after abort")
	}
}

func TestStackUnderflowAborts(t *testing.T) {
	in, _, _ := newTestInterp(t)

	err := in.Apply(&edit.Stream{Seq: 4, Edits: []edit.Edit{
		edit.PopRoot(),
	}})
	if !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("err = %v, want ErrStackUnderflow", err)
	}
}

func TestStackResidueFlagged(t *testing.T) {
	in, _, _ := newTestInterp(t)

	err := in.Apply(&edit.Stream{Seq: 5, Edits: []edit.Edit{
		edit.PushRoot(uint64(RootID)),
		// Missing PopRoot
	}})
	if !errors.Is(err, ErrStackResidue) {
		t.Fatalf("err = %v, want ErrStackResidue", err)
	}
	if in.Stack().Len() != 0 {
		t.Errorf("stack not cleared after residue")
	}
}

func TestCreatePlaceholder(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreatePlaceholder(1),
		edit.AppendChildren(1),
		edit.PopRoot(),
	)

	ph := doc.Root().Children()[0]
	if !ph.IsElement() {
		t.Fatalf("placeholder is not an element: %v", ph.Kind)
	}
	if _, ok := ph.Attribute("loom-placeholder"); !ok {
		t.Errorf("placeholder marker attribute missing")
	}
	if got, _ := in.Registry().Lookup(1); got != ph {
		t.Errorf("placeholder not registered under its id")
	}
}

func TestNewEventListenerWritesReservation(t *testing.T) {
	in, doc, _ := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateElement("button", 7),
		edit.NewEventListener("click", 42, 7),
		edit.AppendChildren(1),
		edit.PopRoot(),
	)

	button := doc.Root().Children()[0]
	if v, _ := button.Attribute("loom-event-click"); v != "42.7" {
		t.Errorf("reservation attribute = %q, want %q", v, "42.7")
	}
	if n := doc.Root().ListenerCount("click"); n != 1 {
		t.Errorf("root listeners = %d, want 1", n)
	}
}

func TestApplyEditsLeavesStack(t *testing.T) {
	in, _, _ := newTestInterp(t)

	// Without the stream-end convention, the produced div stays on the
	// stack for a later batch to consume.
	err := in.ApplyEdits(1, []edit.Edit{
		edit.CreateElement("div", 1),
		edit.CreateElement("span", 2),
		edit.AppendChildren(1),
	})
	if err != nil {
		t.Fatalf("ApplyEdits: %v", err)
	}

	if in.Stack().Len() != 1 {
		t.Fatalf("stack len = %d, want 1", in.Stack().Len())
	}
	top, err := in.Stack().Top()
	if err != nil || top.Tag != "div" {
		t.Errorf("top = %v (%v), want div", top, err)
	}
	if inner := top.Children(); len(inner) != 1 || inner[0].Tag != "span" {
		t.Errorf("div children = %v, want [span]", inner)
	}
}

func TestDelegatedDispatchEndToEnd(t *testing.T) {
	in, doc, queue := newTestInterp(t)

	apply(t, in,
		edit.PushRoot(uint64(RootID)),
		edit.CreateElement("button", 7),
		edit.NewEventListener("click", 42, 7),
		edit.AppendChildren(1),
		edit.PopRoot(),
	)

	button := doc.Root().Children()[0]
	doc.DispatchEvent(&dom.Event{Category: "click", Target: button, ClientX: 3, ClientY: 9})

	tr, ok := queue.TryNext()
	if !ok {
		t.Fatal("no trigger delivered")
	}
	if tr.ComponentID != 42 || tr.NodeID != 7 {
		t.Errorf("decoded ids = (%d, %d), want (42, 7)", tr.ComponentID, tr.NodeID)
	}
	if tr.Category != "click" || tr.Priority != trigger.PriorityHigh {
		t.Errorf("trigger = %+v", tr)
	}
}
