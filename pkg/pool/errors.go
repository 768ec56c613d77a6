package pool

import (
	"errors"
	"fmt"

	"github.com/debeat/essentia/pkg/domain"
)

// Sentinel errors for the store's failure taxonomy. Every failure returned
// by this package wraps exactly one of them, so callers can classify with
// errors.Is while the full message still carries the offending key and type.
var (
	// ErrKeyCollision indicates a name conflicting with an ancestor or
	// descendant name that already holds data.
	ErrKeyCollision = errors.New("key collision")
	// ErrTypeCollision indicates a write under a semantic type different
	// from the one the name is already bound to.
	ErrTypeCollision = errors.New("type collision")
	// ErrModeCollision indicates mixing accumulating and single-valued
	// writes on the same name.
	ErrModeCollision = errors.New("mode collision")
	// ErrNotFound indicates a read of a name absent under the queried type.
	ErrNotFound = errors.New("descriptor not found")
	// ErrInvalidValue indicates a validity-checked write carrying a NaN or
	// infinite numeric component.
	ErrInvalidValue = errors.New("invalid value")
	// ErrLengthMismatch indicates an interleave merge between sequences of
	// different lengths. The policy is to fail rather than truncate or pad.
	ErrLengthMismatch = errors.New("length mismatch")
)

// Error is the concrete error type returned by Pool operations. Key is the
// descriptor name the operation failed on, Requested the semantic type of the
// attempted access and Bound the type the name is already bound to (zero when
// not applicable).
type Error struct {
	Key       string
	Requested domain.DataType
	Bound     domain.DataType
	Err       error
	Detail    string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("pool: %s: descriptor %q", e.Err, e.Key)
	if e.Requested != domain.TypeUnknown {
		msg += fmt.Sprintf(" (%s)", e.Requested)
	}
	if e.Bound != domain.TypeUnknown {
		msg += fmt.Sprintf(", bound as %s", e.Bound)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(err error, key string, requested, bound domain.DataType, detail string) *Error {
	return &Error{Key: key, Requested: requested, Bound: bound, Err: err, Detail: detail}
}

func notFound(key string, requested domain.DataType) *Error {
	return newError(ErrNotFound, key, requested, domain.TypeUnknown, "")
}
