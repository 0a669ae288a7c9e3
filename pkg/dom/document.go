package dom

// Document owns a native tree. It creates nodes and dispatches events
// against them.
type Document struct {
	root *Node
}

// NewDocument creates a document with a root element of the given tag.
func NewDocument(rootTag string) *Document {
	d := &Document{}
	d.root = d.CreateElement(rootTag)
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Node { return d.root }

// CreateElement creates a detached element node.
func (d *Document) CreateElement(tag string) *Node {
	return &Node{Kind: KindElement, Tag: tag, doc: d}
}

// CreateElementNS creates a detached element node in a namespace.
func (d *Document) CreateElementNS(tag, namespace string) *Node {
	return &Node{Kind: KindElement, Tag: tag, Namespace: namespace, doc: d}
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) *Node {
	return &Node{Kind: KindText, Text: text, doc: d}
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(text string) *Node {
	return &Node{Kind: KindComment, Text: text, doc: d}
}
