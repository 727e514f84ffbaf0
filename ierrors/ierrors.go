// Package ierrors defines the error taxonomy shared by the index reader,
// the quantizer and the build engine. The index writer returns the
// underlying I/O errors unwrapped. Hot-path code (codecs, the postings
// accumulator) never constructs one of these; it returns status codes or
// panics on a broken precondition, and callers at the application boundary
// translate that into a *Error.
package ierrors

import "fmt"

// Kind classifies why an operation at the index boundary failed.
type Kind int

const (
	// EncodingOverflow means a codec's output buffer was too small. The
	// caller can retry with a larger buffer; it is not fatal.
	EncodingOverflow Kind = iota
	// IndexCorrupt means the reader found a truncated file, a bad magic
	// number, an unknown codec name, or a d-ness outside {0, 1, -1}.
	IndexCorrupt
	// RankerDomain means a ranker produced NaN or infinite score, leaving
	// the quantization range undefined.
	RankerDomain
	// InvariantViolation means a caller broke a documented precondition,
	// such as pushing a non-monotonic (doc, pos) pair.
	InvariantViolation
)

func (k Kind) String() string {
	switch k {
	case EncodingOverflow:
		return "encoding overflow"
	case IndexCorrupt:
		return "index corrupt"
	case RankerDomain:
		return "ranker domain error"
	case InvariantViolation:
		return "invariant violation"
	default:
		return "unknown error"
	}
}

// Error is the typed error surfaced at the reader/quantizer/engine boundary.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an *Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error that wraps cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// Is lets errors.Is(err, ierrors.Sentinel(ierrors.IndexCorrupt)) work by
// comparing kinds instead of identity: any *Error target with the same Kind
// matches. Targets that are not *Error never match.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinel returns a zero-valued *Error of the given kind, suitable as the
// target of errors.Is.
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind}
}
