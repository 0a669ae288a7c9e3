package dom

import "strings"

// NodeKind is the native node type discriminator.
type NodeKind uint8

const (
	KindElement NodeKind = iota // <div>, <input>, etc.
	KindText                    // Character data
	KindComment                 // Non-rendering marker
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// SVGNamespace is the namespace URI for SVG elements. Class handling on
// SVG elements goes through the attribute rather than the className
// property, mirroring browser behavior.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Attr is a single attribute on an element node.
type Attr struct {
	Name  string
	Value string
}

// Node is a live node in the native tree.
//
// Element nodes carry Tag, Namespace, attributes, and children. Text and
// comment nodes carry Text. Widget properties (Value, Checked, Selected)
// model the live state of form controls; they shadow the corresponding
// attributes the way real inputs do.
type Node struct {
	Kind      NodeKind
	Tag       string
	Namespace string
	Text      string

	attrs    []Attr
	children []*Node
	parent   *Node

	// Live widget properties, distinct from attributes.
	value    string
	checked  bool
	selected bool

	listeners map[string][]EventListener

	doc *Document
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool { return n.Kind == KindText }

// IsElement reports whether the node is an element node.
func (n *Node) IsElement() bool { return n.Kind == KindElement }

// Parent returns the node's parent, or nil for a detached node or the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. The returned slice is the live
// backing array; callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// AppendChild detaches child from its current parent (if any) and
// appends it as the last child of n.
func (n *Node) AppendChild(child *Node) {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// InsertBefore inserts child immediately before ref among n's children.
// If ref is nil or not a child of n, child is appended.
func (n *Node) InsertBefore(child, ref *Node) {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	idx := -1
	if ref != nil {
		for i, c := range n.children {
			if c == ref {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		child.parent = n
		n.children = append(n.children, child)
		return
	}
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
}

// ReplaceWith substitutes n with repl at n's position in its parent.
// It is a no-op on a detached node.
func (n *Node) ReplaceWith(repl *Node) {
	parent := n.parent
	if parent == nil {
		return
	}
	parent.InsertBefore(repl, n)
	parent.removeChild(n)
	n.parent = nil
}

// Remove detaches n from its parent. Detaching an already detached node
// is a no-op.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	n.parent.removeChild(n)
	n.parent = nil
}

// RemoveChildren detaches all children of n.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// SetTextContent replaces the node's text. On an element it drops all
// children and installs a single text child, matching textContent
// assignment in a browser.
func (n *Node) SetTextContent(text string) {
	switch n.Kind {
	case KindText, KindComment:
		n.Text = text
	case KindElement:
		n.RemoveChildren()
		t := n.doc.CreateTextNode(text)
		n.AppendChild(t)
	}
}

// TextContent returns the concatenated text of the node and its subtree.
func (n *Node) TextContent() string {
	switch n.Kind {
	case KindText:
		return n.Text
	case KindComment:
		return ""
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// SetAttribute sets or updates an attribute. Non-element nodes ignore it.
func (n *Node) SetAttribute(name, value string) {
	if n.Kind != KindElement {
		return
	}
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// Attribute returns the attribute value and whether it is present.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// RemoveAttribute removes an attribute if present.
func (n *Node) RemoveAttribute(name string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// Attributes returns the element's attributes in insertion order.
// The returned slice is the live backing array; callers must not mutate it.
func (n *Node) Attributes() []Attr { return n.attrs }

// SetClassName sets the element's class, overwriting any prior value.
func (n *Node) SetClassName(value string) {
	n.SetAttribute("class", value)
}

// ClassName returns the element's class attribute.
func (n *Node) ClassName() string {
	v, _ := n.Attribute("class")
	return v
}

// SetValue sets the live value property (inputs, textareas).
func (n *Node) SetValue(v string) { n.value = v }

// Value returns the live value property.
func (n *Node) Value() string { return n.value }

// SetChecked sets the live checked property (checkboxes, radios).
func (n *Node) SetChecked(v bool) { n.checked = v }

// Checked returns the live checked property.
func (n *Node) Checked() bool { return n.checked }

// SetSelected sets the live selected property (option elements).
func (n *Node) SetSelected(v bool) { n.selected = v }

// Selected returns the live selected property.
func (n *Node) Selected() bool { return n.selected }
