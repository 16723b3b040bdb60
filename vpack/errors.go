package vpack

import "fmt"

// Kind classifies why a Slice or Dumper operation failed.
type Kind int

const (
	// InvalidType means an accessor was called on a Slice whose head byte
	// does not support it.
	InvalidType Kind = iota
	// InvalidUTF8Sequence means a String payload truncates a multi-byte
	// UTF-8 sequence.
	InvalidUTF8Sequence
	// NoJSONEquivalent means a value has no JSON representation and the
	// active options reject it (FailOnUnsupported, or a non-finite Double).
	NoJSONEquivalent
	// NeedCustomTypeHandler means a Custom value was encountered with no
	// handler registered.
	NeedCustomTypeHandler
	// NotImplemented means the BCD type was encountered.
	NotImplemented
	// InternalError means an invariant of the input was violated, e.g. an
	// External reference does not resolve to a valid Slice.
	InternalError
	// IndexOutOfBounds means an Array/Object access was beyond length.
	IndexOutOfBounds
)

func (k Kind) String() string {
	switch k {
	case InvalidType:
		return "InvalidType"
	case InvalidUTF8Sequence:
		return "InvalidUtf8Sequence"
	case NoJSONEquivalent:
		return "NoJsonEquivalent"
	case NeedCustomTypeHandler:
		return "NeedCustomTypeHandler"
	case NotImplemented:
		return "NotImplemented"
	case InternalError:
		return "InternalError"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	default:
		return "Unknown"
	}
}

// Error is the error type raised by vpack and vpack/dump. It carries the
// Kind from spec §7 plus a human-readable message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("vpack: %s: %s", e.Kind, e.Msg)
}

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, vpack.ErrIndexOutOfBounds) against a sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Sentinel errors for use with errors.Is. Only the Kind is compared.
var (
	ErrInvalidType           = &Error{Kind: InvalidType}
	ErrInvalidUTF8Sequence   = &Error{Kind: InvalidUTF8Sequence}
	ErrNoJSONEquivalent      = &Error{Kind: NoJSONEquivalent}
	ErrNeedCustomTypeHandler = &Error{Kind: NeedCustomTypeHandler}
	ErrNotImplemented        = &Error{Kind: NotImplemented}
	ErrInternalError         = &Error{Kind: InternalError}
	ErrIndexOutOfBounds      = &Error{Kind: IndexOutOfBounds}
)
