// Package trigger turns native events back into normalized, logical
// triggers for the component system.
//
// A single delegated listener per event category is installed at the
// delegation root. At dispatch time the originating element's
// reservation attribute is decoded to recover which logical component
// and node the event belongs to, the native payload is normalized by
// category, and the result is pushed onto an unbounded queue that the
// external scheduler drains.
package trigger

// Priority hints the external scheduler how urgently a trigger should
// be processed.
type Priority uint8

const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2
)

// String returns the string representation of the Priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Modifiers is a bitmask of modifier keys held during an event.
type Modifiers uint8

const (
	ModCtrl  Modifiers = 0x01
	ModShift Modifiers = 0x02
	ModAlt   Modifiers = 0x04
	ModMeta  Modifiers = 0x08
)

// Has reports whether the specified modifier is set.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod != 0
}

// MouseData is the payload for pointer categories (click, dblclick,
// mousedown, mouseup, mousemove, contextmenu, drag and drop).
type MouseData struct {
	ClientX   int
	ClientY   int
	PageX     int
	PageY     int
	Button    uint8
	Buttons   uint8 // Bitmask of currently pressed buttons
	Modifiers Modifiers
}

// KeyData is the payload for keyboard categories.
type KeyData struct {
	Key       string
	Code      string // Physical key code (e.g., "KeyA", "Enter")
	Modifiers Modifiers
	Repeat    bool // True while the key is held down (auto-repeat)
}

// InputData is the payload for input/change categories.
type InputData struct {
	Value string
}

// WheelData is the payload for wheel events.
type WheelData struct {
	DeltaX    float64
	DeltaY    float64
	ClientX   int
	ClientY   int
	Modifiers Modifiers
}

// Trigger is a normalized event delivered to the external scheduler.
// Payload is nil for categories without a richer payload; those produce
// a bare "occurred" trigger.
type Trigger struct {
	Category    string
	ComponentID uint64
	NodeID      uint64
	Payload     any
	Priority    Priority
}

// mouseCategories covers the pointer events that carry MouseData.
var mouseCategories = map[string]bool{
	"click":       true,
	"dblclick":    true,
	"contextmenu": true,
	"mousedown":   true,
	"mouseup":     true,
	"mousemove":   true,
	"mouseenter":  true,
	"mouseleave":  true,
	"mouseover":   true,
	"mouseout":    true,
	"dragstart":   true,
	"dragend":     true,
	"drop":        true,
}

// keyCategories covers the keyboard events that carry KeyData.
var keyCategories = map[string]bool{
	"keydown":  true,
	"keyup":    true,
	"keypress": true,
}

// inputCategories covers the form events that carry InputData.
var inputCategories = map[string]bool{
	"input":  true,
	"change": true,
	"submit": true,
}

// discreteCategories are user-intent events that should preempt
// continuous ones.
var discreteCategories = map[string]bool{
	"click":     true,
	"dblclick":  true,
	"mousedown": true,
	"mouseup":   true,
	"keydown":   true,
	"keyup":     true,
	"keypress":  true,
	"input":     true,
	"change":    true,
	"submit":    true,
	"focus":     true,
	"blur":      true,
}

// CategoryPriority returns the scheduling priority for an event category.
func CategoryPriority(category string) Priority {
	if discreteCategories[category] {
		return PriorityHigh
	}
	return PriorityMedium
}
