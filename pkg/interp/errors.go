package interp

import (
	"errors"
	"fmt"

	"github.com/loomui/loom/pkg/edit"
)

// Sentinel errors for interpreter invariant violations. All of them
// indicate desynchronization between the edit stream and the live tree;
// none are recoverable within the current stream.
var (
	// ErrUnknownNodeID is returned when an edit references a node id
	// with no registry entry.
	ErrUnknownNodeID = errors.New("interp: unknown node id")

	// ErrStackUnderflow is returned on pop from an empty builder stack.
	ErrStackUnderflow = errors.New("interp: builder stack underflow")

	// ErrUnsupportedReplaceArity is returned when ReplaceWith names an
	// arity the interpreter cannot honor.
	ErrUnsupportedReplaceArity = errors.New("interp: unsupported replace arity")

	// ErrStackResidue is returned when the builder stack is non-empty
	// after a full stream was applied.
	ErrStackResidue = errors.New("interp: builder stack not empty at stream end")

	// ErrInvalidOp is returned for an instruction the interpreter does
	// not recognize.
	ErrInvalidOp = errors.New("interp: invalid edit op")
)

// ApplyError wraps an error with the position and instruction that
// caused a stream application to abort. Instructions after Index were
// not applied; the caller must treat the tree as desynchronized.
type ApplyError struct {
	Seq   uint64  // Stream sequence number
	Index int     // Position of the failing instruction
	Op    edit.Op // Failing instruction
	Err   error   // Underlying error
}

// Error returns the error message with stream context.
func (e *ApplyError) Error() string {
	return fmt.Sprintf("interp: stream %d aborted at edit %d (%s): %v",
		e.Seq, e.Index, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ApplyError) Unwrap() error {
	return e.Err
}
