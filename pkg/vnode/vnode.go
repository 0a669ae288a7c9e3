// Package vnode provides the abstract render tree produced by component
// renders, and the dynamic render cell that holds a component's render
// function and properties behind a type-erased interface.
//
// Loom never diffs these trees itself; an external diff engine compares
// two of them and emits the edit stream the interpreter consumes.
package vnode

// Kind is the render-tree node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindText                  // Plain text
	KindFragment              // Grouping without a wrapper
	KindComponent             // Nested component invocation
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is a node in the abstract render tree.
type VNode struct {
	Kind      Kind
	Tag       string            // Element tag name
	Namespace string            // Optional element namespace
	Attrs     map[string]string // Attributes
	Events    []string          // Event categories this node listens on
	Children  []*VNode
	Key       string // Reconciliation key for the diff engine
	Text      string // For KindText
	Cell      Cell   // For KindComponent
}

// Element creates an element node.
func Element(tag string, children ...*VNode) *VNode {
	return &VNode{Kind: KindElement, Tag: tag, Children: children}
}

// Text creates a text node.
func Text(text string) *VNode {
	return &VNode{Kind: KindText, Text: text}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...*VNode) *VNode {
	return &VNode{Kind: KindFragment, Children: children}
}

// WithAttr sets an attribute and returns the node for chaining.
func (v *VNode) WithAttr(name, value string) *VNode {
	if v.Attrs == nil {
		v.Attrs = make(map[string]string)
	}
	v.Attrs[name] = value
	return v
}

// WithKey sets the reconciliation key and returns the node.
func (v *VNode) WithKey(key string) *VNode {
	v.Key = key
	return v
}

// On declares an event category this node listens on and returns the node.
func (v *VNode) On(category string) *VNode {
	v.Events = append(v.Events, category)
	return v
}

// RenderReturn is the result of one render call: either a ready render
// tree or the empty placeholder used on suppressed or failed renders.
// No partial result is representable.
type RenderReturn struct {
	Node *VNode
}

// Ready reports whether the render produced a tree.
func (r RenderReturn) Ready() bool {
	return r.Node != nil
}
