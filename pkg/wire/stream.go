package wire

import (
	"fmt"

	"github.com/loomui/loom/pkg/edit"
)

// EncodeStream encodes an edit stream to bytes.
func EncodeStream(s *edit.Stream) []byte {
	e := NewEncoder()
	EncodeStreamTo(e, s)
	return e.Bytes()
}

// EncodeStreamTo encodes an edit stream using the provided encoder.
func EncodeStreamTo(e *Encoder, s *edit.Stream) {
	e.WriteUvarint(s.Seq)
	e.WriteUvarint(uint64(len(s.Edits)))
	for i := range s.Edits {
		encodeEdit(e, &s.Edits[i])
	}
}

func encodeEdit(e *Encoder, ed *edit.Edit) {
	e.WriteByte(byte(ed.Op))

	switch ed.Op {
	case edit.OpPushRoot:
		e.WriteUvarint(ed.ID)

	case edit.OpPopRoot, edit.OpRemove, edit.OpRemoveAllChildren:
		// No additional data

	case edit.OpCreateElement:
		e.WriteString(ed.Tag)
		e.WriteUvarint(ed.ID)
		e.WriteString(ed.Namespace)

	case edit.OpCreateTextNode:
		e.WriteString(ed.Text)
		e.WriteUvarint(ed.ID)

	case edit.OpCreatePlaceholder:
		e.WriteUvarint(ed.ID)

	case edit.OpAppendChildren, edit.OpReplaceWith:
		e.WriteUvarint(uint64(ed.Count))

	case edit.OpSetText:
		e.WriteString(ed.Text)

	case edit.OpSetAttribute:
		e.WriteString(ed.Name)
		e.WriteString(ed.Value)
		e.WriteString(ed.Namespace)

	case edit.OpRemoveAttribute:
		e.WriteString(ed.Name)

	case edit.OpNewEventListener:
		e.WriteString(ed.Name)
		e.WriteUvarint(ed.ComponentID)
		e.WriteUvarint(ed.ID)

	case edit.OpRemoveEventListener:
		e.WriteString(ed.Name)
	}
}

// DecodeStream decodes an edit stream from bytes.
func DecodeStream(data []byte) (*edit.Stream, error) {
	d := NewDecoder(data)
	return DecodeStreamFrom(d)
}

// DecodeStreamFrom decodes an edit stream from a decoder.
func DecodeStreamFrom(d *Decoder) (*edit.Stream, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if count > MaxCollectionCount {
		return nil, ErrCollectionTooLarge
	}

	edits := make([]edit.Edit, count)
	for i := uint64(0); i < count; i++ {
		if err := decodeEdit(d, &edits[i]); err != nil {
			return nil, fmt.Errorf("wire: edit %d: %w", i, err)
		}
	}
	return &edit.Stream{Seq: seq, Edits: edits}, nil
}

func decodeEdit(d *Decoder, ed *edit.Edit) error {
	opByte, err := d.ReadByte()
	if err != nil {
		return err
	}
	ed.Op = edit.Op(opByte)

	switch ed.Op {
	case edit.OpPushRoot:
		ed.ID, err = d.ReadUvarint()

	case edit.OpPopRoot, edit.OpRemove, edit.OpRemoveAllChildren:
		// No additional data

	case edit.OpCreateElement:
		ed.Tag, err = d.ReadString()
		if err != nil {
			return err
		}
		ed.ID, err = d.ReadUvarint()
		if err != nil {
			return err
		}
		ed.Namespace, err = d.ReadString()

	case edit.OpCreateTextNode:
		ed.Text, err = d.ReadString()
		if err != nil {
			return err
		}
		ed.ID, err = d.ReadUvarint()

	case edit.OpCreatePlaceholder:
		ed.ID, err = d.ReadUvarint()

	case edit.OpAppendChildren, edit.OpReplaceWith:
		var n uint64
		n, err = d.ReadUvarint()
		ed.Count = uint32(n)

	case edit.OpSetText:
		ed.Text, err = d.ReadString()

	case edit.OpSetAttribute:
		ed.Name, err = d.ReadString()
		if err != nil {
			return err
		}
		ed.Value, err = d.ReadString()
		if err != nil {
			return err
		}
		ed.Namespace, err = d.ReadString()

	case edit.OpRemoveAttribute:
		ed.Name, err = d.ReadString()

	case edit.OpNewEventListener:
		ed.Name, err = d.ReadString()
		if err != nil {
			return err
		}
		ed.ComponentID, err = d.ReadUvarint()
		if err != nil {
			return err
		}
		ed.ID, err = d.ReadUvarint()

	case edit.OpRemoveEventListener:
		ed.Name, err = d.ReadString()

	default:
		return fmt.Errorf("wire: unknown edit op 0x%02x", opByte)
	}

	return err
}
