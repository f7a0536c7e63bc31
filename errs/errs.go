// Package errs defines the single error type returned by every fallible
// operation in paramio, grounded on the original AampError taxonomy
// (original_source/src/aamp.rs): InvalidData, IoError, BinaryRWError,
// BadString, and a catch-all Any. There is one exported error type; callers
// discriminate with errors.Is against the sentinel Err* values, the same
// way the teacher's sentinel errors (errs.ErrInvalidHeaderSize, ...) are
// tested with testify's require.ErrorIs.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies the taxonomy of failure described in spec §7.
type Kind int

const (
	// KindInvalidData covers a bad magic, version, type byte, a
	// length/offset that falls outside its section, or a text-emission
	// request on an unsupported root.
	KindInvalidData Kind = iota
	// KindIoError wraps a failure from the caller-supplied byte source.
	KindIoError
	// KindBinaryRWError wraps a failure from the binary encoding layer
	// itself (short read, field that can't be represented).
	KindBinaryRWError
	// KindBadString wraps a UTF-8 validation failure.
	KindBadString
	// KindAny is a catch-all for errors that don't fit the other kinds,
	// such as a failed YAML encode or a writer's internal table lookup
	// miss.
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindInvalidData:
		return "InvalidData"
	case KindIoError:
		return "IoError"
	case KindBinaryRWError:
		return "BinaryRWError"
	case KindBadString:
		return "BadString"
	case KindAny:
		return "Any"
	default:
		return "Unknown"
	}
}

// Sentinel base errors, one per Kind, so errors.Is(err, errs.ErrInvalidData)
// works regardless of the message attached to a particular occurrence.
var (
	ErrInvalidData    = errors.New("invalid data")
	ErrIoError        = errors.New("io error")
	ErrBinaryRWError  = errors.New("binary read/write error")
	ErrBadString      = errors.New("invalid string")
	ErrAny            = errors.New("error")
)

// Error is the sole error type returned by paramio's public operations.
// It carries a Kind, a human-readable message, and an optional wrapped
// cause. Unwrap returns the Kind's sentinel so errors.Is still matches
// even when a cause is also present.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the wrapped cause, if any, followed by the Kind's
// sentinel, so both errors.Is(err, someCause) and
// errors.Is(err, errs.ErrInvalidData) succeed.
func (e *Error) Unwrap() []error {
	sentinel := sentinelFor(e.Kind)
	if e.Err != nil {
		return []error{e.Err, sentinel}
	}

	return []error{sentinel}
}

func sentinelFor(k Kind) error {
	switch k {
	case KindInvalidData:
		return ErrInvalidData
	case KindIoError:
		return ErrIoError
	case KindBinaryRWError:
		return ErrBinaryRWError
	case KindBadString:
		return ErrBadString
	default:
		return ErrAny
	}
}

// InvalidData builds a KindInvalidData error from a format string, matching
// the original's InvalidData(&'static str) variant.
func InvalidData(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidData, Msg: fmt.Sprintf(format, args...)}
}

// IoError wraps a failure reading from the caller-supplied byte source.
func IoError(cause error) *Error {
	return &Error{Kind: KindIoError, Msg: "io error", Err: cause}
}

// BinaryRWError wraps a failure in the binary encoding layer.
func BinaryRWError(format string, args ...any) *Error {
	return &Error{Kind: KindBinaryRWError, Msg: fmt.Sprintf(format, args...)}
}

// BadString wraps a UTF-8 validation failure.
func BadString(cause error) *Error {
	return &Error{Kind: KindBadString, Msg: "invalid utf-8", Err: cause}
}

// Any builds a catch-all error from free text, matching the original's
// Error::Any(Cow<'static, str>) variant.
func Any(text string) *Error {
	return &Error{Kind: KindAny, Msg: text}
}
