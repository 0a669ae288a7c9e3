package dom

// Event is a native event travelling through the tree. Payload fields
// are populated by whatever injects the event (a test, a transport, a
// simulated widget); the delegation layer decides which of them matter
// for a given category.
type Event struct {
	Category string // "click", "input", "keydown", ...
	Target   *Node

	// Pointer fields.
	ClientX, ClientY int
	PageX, PageY     int
	Button, Buttons  uint8

	// Key fields.
	Key    string
	Code   string
	Repeat bool

	// Form fields.
	Value string

	// Wheel fields.
	DeltaX, DeltaY float64

	// Modifier keys, shared across pointer/key/wheel categories.
	Ctrl, Shift, Alt, Meta bool

	stopped bool
}

// StopPropagation prevents the event from bubbling further.
func (e *Event) StopPropagation() { e.stopped = true }

// EventListener receives dispatched events.
type EventListener func(*Event)

// AddEventListener registers a listener for an event category on this
// node. Listeners fire during the bubble phase in registration order.
func (n *Node) AddEventListener(category string, fn EventListener) {
	if n.listeners == nil {
		n.listeners = make(map[string][]EventListener)
	}
	n.listeners[category] = append(n.listeners[category], fn)
}

// RemoveEventListeners drops all listeners for a category on this node.
func (n *Node) RemoveEventListeners(category string) {
	if n.listeners != nil {
		delete(n.listeners, category)
	}
}

// ListenerCount returns the number of listeners registered for a
// category on this node.
func (n *Node) ListenerCount(category string) int {
	return len(n.listeners[category])
}

// DispatchEvent bubbles ev from ev.Target up to the document root,
// invoking matching listeners at each node. Dispatch on a nil target is
// a no-op.
func (d *Document) DispatchEvent(ev *Event) {
	for n := ev.Target; n != nil; n = n.parent {
		for _, fn := range n.listeners[ev.Category] {
			fn(ev)
			if ev.stopped {
				return
			}
		}
	}
}
