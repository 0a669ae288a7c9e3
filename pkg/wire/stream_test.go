package wire

import (
	"reflect"
	"testing"

	"github.com/loomui/loom/pkg/edit"
)

func TestStreamRoundTrip(t *testing.T) {
	original := &edit.Stream{
		Seq: 42,
		Edits: []edit.Edit{
			edit.PushRoot(0),
			edit.CreateElement("div", 1),
			edit.CreateElementNS("circle", 2, "http://www.w3.org/2000/svg"),
			edit.CreateTextNode("hello", 3),
			edit.CreatePlaceholder(4),
			edit.AppendChildren(4),
			edit.SetText("updated"),
			edit.SetAttribute("class", "primary"),
			edit.SetAttributeNS("class", "ring", "http://www.w3.org/2000/svg"),
			edit.RemoveAttribute("value"),
			edit.NewEventListener("click", 7, 1),
			edit.RemoveEventListener("click"),
			edit.ReplaceWith(2),
			edit.RemoveAllChildren(),
			edit.Remove(),
			edit.PopRoot(),
		},
	}

	decoded, err := DecodeStream(EncodeStream(original))
	if err != nil {
		t.Fatalf("DecodeStream: %v", err)
	}

	if decoded.Seq != original.Seq {
		t.Errorf("Seq = %d, want %d", decoded.Seq, original.Seq)
	}
	if len(decoded.Edits) != len(original.Edits) {
		t.Fatalf("got %d edits, want %d", len(decoded.Edits), len(original.Edits))
	}
	for i := range original.Edits {
		if !reflect.DeepEqual(decoded.Edits[i], original.Edits[i]) {
			t.Errorf("edit %d = %+v, want %+v", i, decoded.Edits[i], original.Edits[i])
		}
	}
}

func TestStreamDecodeUnknownOp(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1) // seq
	e.WriteUvarint(1) // count
	e.WriteByte(0xEE) // bogus op

	if _, err := DecodeStream(e.Bytes()); err == nil {
		t.Error("unknown op decoded without error")
	}
}

func TestStreamDecodeTruncated(t *testing.T) {
	data := EncodeStream(&edit.Stream{
		Seq:   1,
		Edits: []edit.Edit{edit.CreateElement("div", 1)},
	})

	for i := 0; i < len(data); i++ {
		if _, err := DecodeStream(data[:i]); err == nil {
			t.Errorf("truncated stream of %d bytes decoded without error", i)
		}
	}
}

func TestStreamDecodeCollectionLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1)
	e.WriteUvarint(MaxCollectionCount + 1)

	if _, err := DecodeStream(e.Bytes()); err != ErrCollectionTooLarge {
		t.Errorf("err = %v, want ErrCollectionTooLarge", err)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}
	f := NewFrame(FrameEdits, payload)

	data, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if decoded.Type != FrameEdits {
		t.Errorf("Type = %v, want Edits", decoded.Type)
	}
	if !reflect.DeepEqual(decoded.Payload, payload) {
		t.Errorf("Payload = %v, want %v", decoded.Payload, payload)
	}
}

func TestFrameTooLarge(t *testing.T) {
	f := NewFrame(FrameEdits, make([]byte, MaxPayloadSize+1))
	if _, err := f.Encode(); err != ErrFrameTooLarge {
		t.Errorf("err = %v, want ErrFrameTooLarge", err)
	}
}

func TestFrameTruncated(t *testing.T) {
	if _, err := DecodeFrame([]byte{0x01, 0x00}); err != ErrFrameTruncated {
		t.Errorf("short header err = %v, want ErrFrameTruncated", err)
	}
	// Header claims 10 payload bytes but none follow.
	if _, err := DecodeFrame([]byte{0x01, 0x00, 0x00, 0x0A}); err != ErrFrameTruncated {
		t.Errorf("short payload err = %v, want ErrFrameTruncated", err)
	}
}

func TestErrorMessageRoundTrip(t *testing.T) {
	em := &ErrorMessage{Code: CodeUnknownNode, Message: "node 17 missing", Fatal: true}

	decoded, err := DecodeErrorMessage(EncodeErrorMessage(em))
	if err != nil {
		t.Fatalf("DecodeErrorMessage: %v", err)
	}
	if decoded.Code != em.Code || decoded.Message != em.Message || decoded.Fatal != em.Fatal {
		t.Errorf("decoded = %+v, want %+v", decoded, em)
	}
	if decoded.Error() != "fatal: UnknownNode: node 17 missing" {
		t.Errorf("Error() = %q", decoded.Error())
	}
}
