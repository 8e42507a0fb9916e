package cfg

import (
	"errors"
	"fmt"
)

// ErrorKind classifies errors produced while loading a document or querying
// the parsed tree.
type ErrorKind int

const (
	ErrNone ErrorKind = iota

	// Load-time errors.
	ErrOpenFile             // The file could not be opened or read.
	ErrFileTooLarge         // The input exceeds MaxInputSize.
	ErrUnknownToken         // The lexer hit a malformed token.
	ErrUnexpectedToken      // A token outside the grammar's expected set, including array element type mismatches.
	ErrVariableRedefinition // A name declared twice in the same context.

	// Query-time errors, reported by the Lookup accessor family.
	ErrVariableNotFound
	ErrVariableWrongType
	ErrVariableParse // The stored literal did not parse as the requested type.
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrOpenFile:
		return "open file"
	case ErrFileTooLarge:
		return "file too large"
	case ErrUnknownToken:
		return "unknown token"
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrVariableRedefinition:
		return "variable redefinition"
	case ErrVariableNotFound:
		return "variable not found"
	case ErrVariableWrongType:
		return "variable wrong type"
	case ErrVariableParse:
		return "variable parse"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Error is the error type returned by all loading and Lookup operations.
// Line and Column are set where the error is tied to a source position and
// zero otherwise.
type Error struct {
	Kind   ErrorKind
	Line   int
	Column int
	msg    string
}

// Error returns the human-readable message.
func (e *Error) Error() string {
	return e.msg
}

// Unwrap is implemented so query errors can be matched with errors.Is against
// the sentinel values below.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case ErrVariableNotFound:
		return ErrNotFound
	case ErrVariableWrongType:
		return ErrWrongType
	default:
		return nil
	}
}

// Sentinel errors for the common query failures.
var (
	ErrNotFound  = errors.New("variable not found")
	ErrWrongType = errors.New("variable has wrong type")
)

// KindOf returns the ErrorKind carried by err, or ErrNone if err is nil or
// not produced by this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrNone
}

// errorf builds an Error without position information.
func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// errorAt builds an Error pinned to a source position. The position is
// appended to the message in the same "line N, column M" form across the
// lexer and parser.
func errorAt(kind ErrorKind, line, column int, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Line:   line,
		Column: column,
		msg:    fmt.Sprintf(format, args...) + fmt.Sprintf(" at line %d, column %d", line, column),
	}
}
