package wire

import "errors"

// FrameHeaderSize is the size of the frame header in bytes.
const FrameHeaderSize = 4

// MaxPayloadSize is the maximum frame payload size (2^16 - 1 bytes).
const MaxPayloadSize = 65535

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameEdits   FrameType = 0x01 // Diff engine → host: edit stream
	FrameTrigger FrameType = 0x02 // Host → scheduler: normalized trigger
	FrameError   FrameType = 0x03 // Host → diff engine: error report
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameEdits:
		return "Edits"
	case FrameTrigger:
		return "Trigger"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Frame errors.
var (
	ErrFrameTooLarge  = errors.New("wire: frame payload too large")
	ErrFrameTruncated = errors.New("wire: frame truncated")
)

// Frame is a protocol frame: a 4-byte header plus payload.
type Frame struct {
	Type    FrameType
	Flags   uint8
	Payload []byte
}

// NewFrame creates a frame of the given type.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode serializes the frame, header first.
func (f *Frame) Encode() ([]byte, error) {
	if len(f.Payload) > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, FrameHeaderSize+len(f.Payload))
	buf[0] = byte(f.Type)
	buf[1] = f.Flags
	buf[2] = byte(len(f.Payload) >> 8)
	buf[3] = byte(len(f.Payload))
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf, nil
}

// DecodeFrame parses a frame from data. The returned payload references
// data; callers must not retain it past the buffer's lifetime.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, ErrFrameTruncated
	}
	length := int(data[2])<<8 | int(data[3])
	if len(data) < FrameHeaderSize+length {
		return nil, ErrFrameTruncated
	}
	return &Frame{
		Type:    FrameType(data[0]),
		Flags:   data[1],
		Payload: data[FrameHeaderSize : FrameHeaderSize+length],
	}, nil
}
