// Package errors provides structured error handling for elevation emulation.
//
// Only InvalidArgument errors are returned to callers. Resource lookups and
// decoding failures are recovered where they happen and reported through the
// global handler so the shadow degrades to "no contribution".
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidArgument indicates a programmer error such as a negative size.
	KindInvalidArgument
	// KindNotFound indicates a resource id or file that cannot be loaded.
	KindNotFound
	// KindMalformed indicates a resource whose structure is incomplete.
	KindMalformed
	// KindUnsupported indicates a node shape the resolver does not handle.
	KindUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "resource_not_found"
	case KindMalformed:
		return "malformed_resource"
	case KindUnsupported:
		return "unsupported_node"
	default:
		return "unknown"
	}
}

// Error represents a structured error raised by the elevation packages.
type Error struct {
	// Op is the operation that failed (e.g., "shadow.SetShadowSize").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Resource names the resource involved, if any.
	Resource string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error was reported.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s [%s] resource=%s: %v", e.Op, e.Kind, e.Resource, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given kind wrapping err.
func New(op string, kind ErrorKind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Newf builds an Error of the given kind with a formatted message.
func Newf(op string, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
