package trigger

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/loomui/loom/pkg/dom"
)

// ReservationPrefix prefixes the attribute written onto native nodes to
// reserve a delegated event. The full attribute name is
// "loom-event-<category>" and its value is "<component-id>.<node-id>".
const ReservationPrefix = "loom-event-"

// ErrMalformedTrigger is returned when a dispatched event's reservation
// attribute is missing or cannot be parsed. The event is logged and
// dropped; dispatch of other events is unaffected.
var ErrMalformedTrigger = errors.New("trigger: malformed reservation attribute")

// registration tracks the delegated listener for one event category.
type registration struct {
	refs int
}

// Delegator installs at most one native listener per event category at
// a single delegation root and decodes, at dispatch time, which logical
// component and node each event belongs to.
//
// One Delegator exists per document root; it owns the per-category
// reference counts. It is single-goroutine-owned except for the queue
// crossing, which is safe for concurrent use.
type Delegator struct {
	root   *dom.Node
	queue  *Queue
	logger *slog.Logger

	registrations map[string]*registration
}

// NewDelegator creates a delegator rooted at root, delivering triggers
// to queue. A nil logger falls back to slog.Default().
func NewDelegator(root *dom.Node, queue *Queue, logger *slog.Logger) *Delegator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Delegator{
		root:          root,
		queue:         queue,
		logger:        logger,
		registrations: make(map[string]*registration),
	}
}

// ReservationAttr returns the reservation attribute name for a category.
func ReservationAttr(category string) string {
	return ReservationPrefix + category
}

// Register reserves the given category on target for the logical pair
// (componentID, nodeID) and ensures exactly one native listener exists
// for that category at the delegation root. The first registration for
// a category installs the listener; later ones only bump its reference
// count.
func (d *Delegator) Register(category string, componentID, nodeID uint64, target *dom.Node) {
	target.SetAttribute(
		ReservationAttr(category),
		fmt.Sprintf("%d.%d", componentID, nodeID),
	)

	if reg, ok := d.registrations[category]; ok {
		reg.refs++
		return
	}

	d.root.AddEventListener(category, func(ev *dom.Event) {
		t, err := d.decode(ev)
		if err != nil {
			d.logger.Error("dropping undecodable event",
				"category", ev.Category, "error", err)
			return
		}
		d.queue.Push(t)
	})
	d.registrations[category] = &registration{refs: 1}
}

// Unregister releases one logical listener for the category. When the
// reference count reaches zero the native listener is detached from the
// delegation root.
func (d *Delegator) Unregister(category string) {
	reg, ok := d.registrations[category]
	if !ok {
		d.logger.Warn("unregister of unknown event category", "category", category)
		return
	}
	reg.refs--
	if reg.refs > 0 {
		return
	}
	d.root.RemoveEventListeners(category)
	delete(d.registrations, category)
}

// Refs returns the current reference count for a category.
func (d *Delegator) Refs(category string) int {
	if reg, ok := d.registrations[category]; ok {
		return reg.refs
	}
	return 0
}

// decode recovers the logical (component, node) pair from the event's
// origin element and normalizes the payload by category.
func (d *Delegator) decode(ev *dom.Event) (Trigger, error) {
	if ev.Target == nil {
		return Trigger{}, fmt.Errorf("%w: event has no target", ErrMalformedTrigger)
	}

	val, ok := ev.Target.Attribute(ReservationAttr(ev.Category))
	if !ok {
		return Trigger{}, fmt.Errorf("%w: no %s%s attribute on target",
			ErrMalformedTrigger, ReservationPrefix, ev.Category)
	}

	fields := strings.SplitN(val, ".", 3)
	if len(fields) < 2 {
		return Trigger{}, fmt.Errorf("%w: %q", ErrMalformedTrigger, val)
	}

	componentID, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return Trigger{}, fmt.Errorf("%w: component id %q", ErrMalformedTrigger, fields[0])
	}
	nodeID, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Trigger{}, fmt.Errorf("%w: node id %q", ErrMalformedTrigger, fields[1])
	}

	return Trigger{
		Category:    ev.Category,
		ComponentID: componentID,
		NodeID:      nodeID,
		Payload:     normalize(ev),
		Priority:    CategoryPriority(ev.Category),
	}, nil
}

// normalize extracts the category-specific payload from a native event.
func normalize(ev *dom.Event) any {
	switch {
	case mouseCategories[ev.Category]:
		return &MouseData{
			ClientX:   ev.ClientX,
			ClientY:   ev.ClientY,
			PageX:     ev.PageX,
			PageY:     ev.PageY,
			Button:    ev.Button,
			Buttons:   ev.Buttons,
			Modifiers: modifiersOf(ev),
		}
	case keyCategories[ev.Category]:
		return &KeyData{
			Key:       ev.Key,
			Code:      ev.Code,
			Modifiers: modifiersOf(ev),
			Repeat:    ev.Repeat,
		}
	case inputCategories[ev.Category]:
		value := ev.Value
		if value == "" && ev.Target != nil {
			// Controlled inputs report through the live property.
			value = ev.Target.Value()
		}
		return &InputData{Value: value}
	case ev.Category == "wheel":
		return &WheelData{
			DeltaX:    ev.DeltaX,
			DeltaY:    ev.DeltaY,
			ClientX:   ev.ClientX,
			ClientY:   ev.ClientY,
			Modifiers: modifiersOf(ev),
		}
	default:
		return nil
	}
}

func modifiersOf(ev *dom.Event) Modifiers {
	var m Modifiers
	if ev.Ctrl {
		m |= ModCtrl
	}
	if ev.Shift {
		m |= ModShift
	}
	if ev.Alt {
		m |= ModAlt
	}
	if ev.Meta {
		m |= ModMeta
	}
	return m
}
