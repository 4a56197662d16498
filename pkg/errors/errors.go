// Package errors provides structured error handling for the vdom reconciler.
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
	// KindInvalidDescriptor indicates a tag or component that cannot be classified.
	KindInvalidDescriptor
	// KindDuplicateKey indicates two siblings sharing a key.
	KindDuplicateKey
	// KindInvariant indicates a structural invariant violation (a programming fault).
	KindInvariant
	// KindAdapter indicates a failure raised by the host adapter.
	KindAdapter
	// KindDecode indicates a malformed descriptor document.
	KindDecode
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidDescriptor:
		return "invalid-descriptor"
	case KindDuplicateKey:
		return "duplicate-key"
	case KindInvariant:
		return "invariant"
	case KindAdapter:
		return "adapter"
	case KindDecode:
		return "decode"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinels wrapped by Error values of the matching kind, for use with errors.Is.
var (
	ErrInvalidDescriptorInput = stderrors.New("invalid descriptor input")
	ErrDuplicateSiblingKey    = stderrors.New("duplicate sibling key")
	ErrStructuralInvariant    = stderrors.New("structural invariant violation")
)

// Error represents a structured reconciliation error.
type Error struct {
	// Op is the operation that failed (e.g., "core.New", "core.patch").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Key is the sibling key involved, if applicable.
	Key string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s [%s] key=%s: %v", e.Op, e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidDescriptor builds a KindInvalidDescriptor error wrapping ErrInvalidDescriptorInput.
func InvalidDescriptor(op, format string, args ...any) *Error {
	return &Error{
		Op:   op,
		Kind: KindInvalidDescriptor,
		Err:  fmt.Errorf("%w: %s", ErrInvalidDescriptorInput, fmt.Sprintf(format, args...)),
	}
}

// DuplicateKey builds a KindDuplicateKey error for the given key.
func DuplicateKey(op, key string) *Error {
	return &Error{
		Op:   op,
		Kind: KindDuplicateKey,
		Key:  key,
		Err:  ErrDuplicateSiblingKey,
	}
}

// Invariant builds a KindInvariant error wrapping ErrStructuralInvariant.
func Invariant(op, format string, args ...any) *Error {
	return &Error{
		Op:         op,
		Kind:       KindInvariant,
		Err:        fmt.Errorf("%w: %s", ErrStructuralInvariant, fmt.Sprintf(format, args...)),
		StackTrace: CaptureStack(),
	}
}

// Adapter wraps an error returned by the host adapter without altering it.
func Adapter(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindAdapter,
		Err:  err,
	}
}

// Decode builds a KindDecode error wrapping a *DecodeError for path.
func Decode(op, path, reason string) *Error {
	return &Error{
		Op:   op,
		Kind: KindDecode,
		Err:  &DecodeError{Path: path, Reason: reason},
	}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.Renderer.Render").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// DecodeError represents a failure to decode a descriptor document.
type DecodeError struct {
	// Path locates the offending node (e.g., "steps[1].tree.children[0]").
	Path string
	// Reason describes what was wrong.
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// ErrorHandler receives errors reported by the reconciler.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
