package wire

// ErrorCode identifies the kind of failure a host reports to its diff
// producer.
type ErrorCode uint16

const (
	CodeUnknown       ErrorCode = 0x0000 // Unclassified error
	CodeInvalidFrame  ErrorCode = 0x0001 // Malformed frame or payload
	CodeUnknownNode   ErrorCode = 0x0002 // Edit referenced an unregistered id
	CodeStackFault    ErrorCode = 0x0003 // Builder stack underflow or residue
	CodeReplaceArity  ErrorCode = 0x0004 // Unsupported ReplaceWith arity
	CodeApplyFailed   ErrorCode = 0x0005 // Other fatal apply failure
	CodeEventDropped  ErrorCode = 0x0006 // Undecodable event dropped (informational)
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	switch c {
	case CodeUnknown:
		return "Unknown"
	case CodeInvalidFrame:
		return "InvalidFrame"
	case CodeUnknownNode:
		return "UnknownNode"
	case CodeStackFault:
		return "StackFault"
	case CodeReplaceArity:
		return "ReplaceArity"
	case CodeApplyFailed:
		return "ApplyFailed"
	case CodeEventDropped:
		return "EventDropped"
	default:
		return "Unknown"
	}
}

// ErrorMessage reports a failure across the wire. Fatal errors mean the
// document is desynchronized and the producer must resync from scratch.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
	Fatal   bool
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	if em.Fatal {
		return "fatal: " + em.Code.String() + ": " + em.Message
	}
	return em.Code.String() + ": " + em.Message
}

// EncodeErrorMessage encodes an ErrorMessage to bytes.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteUint16(uint16(em.Code))
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

// DecodeErrorMessage decodes an ErrorMessage from bytes.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	code, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	msg, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: ErrorCode(code), Message: msg, Fatal: fatal}, nil
}
