// Package edit defines the tree-mutation instruction set exchanged
// between a diff engine and loom's interpreter.
//
// An edit stream is a flat, ordered sequence of instructions that
// describes arbitrarily nested tree edits through a small stack
// discipline: create instructions push the node they produce, and
// structural instructions consume the most recently pushed nodes.
package edit

// Op is the type of edit instruction.
type Op uint8

const (
	OpPushRoot            Op = 0x01 // Resolve id and push its node
	OpPopRoot             Op = 0x02 // Drop the top of the stack
	OpCreateElement       Op = 0x03 // Create element, register, push
	OpCreateTextNode      Op = 0x04 // Create text node, register, push
	OpCreatePlaceholder   Op = 0x05 // Create position marker, register, push
	OpAppendChildren      Op = 0x06 // Pop N nodes, append to parent below
	OpReplaceWith         Op = 0x07 // Pop N new + old, substitute in place
	OpRemove              Op = 0x08 // Detach the top node
	OpRemoveAllChildren   Op = 0x09 // Detach all children of the top node
	OpSetText             Op = 0x0A // Set text content of the top node
	OpSetAttribute        Op = 0x0B // Set attribute on the top node
	OpRemoveAttribute     Op = 0x0C // Remove attribute from the top node
	OpNewEventListener    Op = 0x0D // Reserve delegated event on top node
	OpRemoveEventListener Op = 0x0E // Release a delegated event category
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpPushRoot:
		return "PushRoot"
	case OpPopRoot:
		return "PopRoot"
	case OpCreateElement:
		return "CreateElement"
	case OpCreateTextNode:
		return "CreateTextNode"
	case OpCreatePlaceholder:
		return "CreatePlaceholder"
	case OpAppendChildren:
		return "AppendChildren"
	case OpReplaceWith:
		return "ReplaceWith"
	case OpRemove:
		return "Remove"
	case OpRemoveAllChildren:
		return "RemoveAllChildren"
	case OpSetText:
		return "SetText"
	case OpSetAttribute:
		return "SetAttribute"
	case OpRemoveAttribute:
		return "RemoveAttribute"
	case OpNewEventListener:
		return "NewEventListener"
	case OpRemoveEventListener:
		return "RemoveEventListener"
	default:
		return "Unknown"
	}
}

// Edit is a single tree-mutation instruction. Field use depends on Op;
// unused fields are zero.
type Edit struct {
	Op          Op
	ID          uint64 // Node id (PushRoot, Create*)
	ComponentID uint64 // Owning component (NewEventListener)
	Tag         string // Element tag (CreateElement)
	Text        string // Text content (CreateTextNode, SetText)
	Name        string // Attribute or event name
	Value       string // Attribute value
	Namespace   string // Optional namespace (CreateElement, SetAttribute)
	Count       uint32 // Arity (AppendChildren, ReplaceWith)
}

// Stream is an ordered batch of edits with a sequence number.
type Stream struct {
	Seq   uint64
	Edits []Edit
}

// PushRoot creates a PushRoot edit.
func PushRoot(id uint64) Edit {
	return Edit{Op: OpPushRoot, ID: id}
}

// PopRoot creates a PopRoot edit.
func PopRoot() Edit {
	return Edit{Op: OpPopRoot}
}

// CreateElement creates a CreateElement edit.
func CreateElement(tag string, id uint64) Edit {
	return Edit{Op: OpCreateElement, Tag: tag, ID: id}
}

// CreateElementNS creates a namespaced CreateElement edit.
func CreateElementNS(tag string, id uint64, namespace string) Edit {
	return Edit{Op: OpCreateElement, Tag: tag, ID: id, Namespace: namespace}
}

// CreateTextNode creates a CreateTextNode edit.
func CreateTextNode(text string, id uint64) Edit {
	return Edit{Op: OpCreateTextNode, Text: text, ID: id}
}

// CreatePlaceholder creates a CreatePlaceholder edit.
func CreatePlaceholder(id uint64) Edit {
	return Edit{Op: OpCreatePlaceholder, ID: id}
}

// AppendChildren creates an AppendChildren edit.
func AppendChildren(n uint32) Edit {
	return Edit{Op: OpAppendChildren, Count: n}
}

// ReplaceWith creates a ReplaceWith edit.
func ReplaceWith(n uint32) Edit {
	return Edit{Op: OpReplaceWith, Count: n}
}

// Remove creates a Remove edit.
func Remove() Edit {
	return Edit{Op: OpRemove}
}

// RemoveAllChildren creates a RemoveAllChildren edit.
func RemoveAllChildren() Edit {
	return Edit{Op: OpRemoveAllChildren}
}

// SetText creates a SetText edit.
func SetText(text string) Edit {
	return Edit{Op: OpSetText, Text: text}
}

// SetAttribute creates a SetAttribute edit.
func SetAttribute(name, value string) Edit {
	return Edit{Op: OpSetAttribute, Name: name, Value: value}
}

// SetAttributeNS creates a namespaced SetAttribute edit.
func SetAttributeNS(name, value, namespace string) Edit {
	return Edit{Op: OpSetAttribute, Name: name, Value: value, Namespace: namespace}
}

// RemoveAttribute creates a RemoveAttribute edit.
func RemoveAttribute(name string) Edit {
	return Edit{Op: OpRemoveAttribute, Name: name}
}

// NewEventListener creates a NewEventListener edit.
func NewEventListener(event string, componentID, nodeID uint64) Edit {
	return Edit{Op: OpNewEventListener, Name: event, ComponentID: componentID, ID: nodeID}
}

// RemoveEventListener creates a RemoveEventListener edit.
func RemoveEventListener(event string) Edit {
	return Edit{Op: OpRemoveEventListener, Name: event}
}
