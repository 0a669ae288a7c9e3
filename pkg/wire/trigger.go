package wire

import (
	"errors"
	"fmt"

	"github.com/loomui/loom/pkg/trigger"
)

// payloadTag discriminates the trigger payload variant on the wire.
type payloadTag uint8

const (
	payloadNone  payloadTag = 0x00
	payloadMouse payloadTag = 0x01
	payloadKey   payloadTag = 0x02
	payloadInput payloadTag = 0x03
	payloadWheel payloadTag = 0x04
)

// ErrInvalidTriggerPayload is returned when a trigger payload cannot be
// encoded or decoded.
var ErrInvalidTriggerPayload = errors.New("wire: invalid trigger payload")

// EncodeTrigger encodes a normalized trigger to bytes.
func EncodeTrigger(t *trigger.Trigger) []byte {
	e := NewEncoder()
	EncodeTriggerTo(e, t)
	return e.Bytes()
}

// EncodeTriggerTo encodes a trigger using the provided encoder.
func EncodeTriggerTo(e *Encoder, t *trigger.Trigger) {
	e.WriteString(t.Category)
	e.WriteUvarint(t.ComponentID)
	e.WriteUvarint(t.NodeID)
	e.WriteByte(byte(t.Priority))

	switch p := t.Payload.(type) {
	case nil:
		e.WriteByte(byte(payloadNone))

	case *trigger.MouseData:
		e.WriteByte(byte(payloadMouse))
		e.WriteSvarint(int64(p.ClientX))
		e.WriteSvarint(int64(p.ClientY))
		e.WriteSvarint(int64(p.PageX))
		e.WriteSvarint(int64(p.PageY))
		e.WriteByte(p.Button)
		e.WriteByte(p.Buttons)
		e.WriteByte(byte(p.Modifiers))

	case *trigger.KeyData:
		e.WriteByte(byte(payloadKey))
		e.WriteString(p.Key)
		e.WriteString(p.Code)
		e.WriteByte(byte(p.Modifiers))
		e.WriteBool(p.Repeat)

	case *trigger.InputData:
		e.WriteByte(byte(payloadInput))
		e.WriteString(p.Value)

	case *trigger.WheelData:
		e.WriteByte(byte(payloadWheel))
		e.WriteFloat64(p.DeltaX)
		e.WriteFloat64(p.DeltaY)
		e.WriteSvarint(int64(p.ClientX))
		e.WriteSvarint(int64(p.ClientY))
		e.WriteByte(byte(p.Modifiers))

	default:
		// Unknown payloads degrade to a bare "occurred" trigger.
		e.WriteByte(byte(payloadNone))
	}
}

// DecodeTrigger decodes a trigger from bytes.
func DecodeTrigger(data []byte) (*trigger.Trigger, error) {
	d := NewDecoder(data)
	return DecodeTriggerFrom(d)
}

// DecodeTriggerFrom decodes a trigger from a decoder.
func DecodeTriggerFrom(d *Decoder) (*trigger.Trigger, error) {
	t := &trigger.Trigger{}

	var err error
	if t.Category, err = d.ReadString(); err != nil {
		return nil, err
	}
	if t.ComponentID, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if t.NodeID, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	prio, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	t.Priority = trigger.Priority(prio)

	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}

	switch payloadTag(tag) {
	case payloadNone:
		t.Payload = nil

	case payloadMouse:
		p := &trigger.MouseData{}
		if err := readInts(d, &p.ClientX, &p.ClientY, &p.PageX, &p.PageY); err != nil {
			return nil, err
		}
		if p.Button, err = d.ReadByte(); err != nil {
			return nil, err
		}
		if p.Buttons, err = d.ReadByte(); err != nil {
			return nil, err
		}
		mods, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		p.Modifiers = trigger.Modifiers(mods)
		t.Payload = p

	case payloadKey:
		p := &trigger.KeyData{}
		if p.Key, err = d.ReadString(); err != nil {
			return nil, err
		}
		if p.Code, err = d.ReadString(); err != nil {
			return nil, err
		}
		mods, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		p.Modifiers = trigger.Modifiers(mods)
		if p.Repeat, err = d.ReadBool(); err != nil {
			return nil, err
		}
		t.Payload = p

	case payloadInput:
		p := &trigger.InputData{}
		if p.Value, err = d.ReadString(); err != nil {
			return nil, err
		}
		t.Payload = p

	case payloadWheel:
		p := &trigger.WheelData{}
		if p.DeltaX, err = d.ReadFloat64(); err != nil {
			return nil, err
		}
		if p.DeltaY, err = d.ReadFloat64(); err != nil {
			return nil, err
		}
		if err := readInts(d, &p.ClientX, &p.ClientY); err != nil {
			return nil, err
		}
		mods, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		p.Modifiers = trigger.Modifiers(mods)
		t.Payload = p

	default:
		return nil, fmt.Errorf("%w: tag 0x%02x", ErrInvalidTriggerPayload, tag)
	}

	return t, nil
}

func readInts(d *Decoder, dst ...*int) error {
	for _, p := range dst {
		v, err := d.ReadSvarint()
		if err != nil {
			return err
		}
		*p = int(v)
	}
	return nil
}
