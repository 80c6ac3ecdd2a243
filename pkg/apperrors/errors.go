// Package apperrors defines the error taxonomy the core raises to its
// callers. Every failure a handler is allowed to translate into a client
// response is one of these kinds; anything else is an internal fault.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindInsufficientStock
	KindAuthorization
	KindInvalidState
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindAuthorization:
		return "authorization"
	case KindInvalidState:
		return "invalid_state"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func InsufficientStock(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInsufficientStock, Msg: fmt.Sprintf(format, args...)}
}

func Authorization(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuthorization, Msg: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Msg: fmt.Sprintf(format, args...)}
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsNotFound(err error) bool          { return kindOf(err) == KindNotFound }
func IsValidation(err error) bool        { return kindOf(err) == KindValidation }
func IsInsufficientStock(err error) bool { return kindOf(err) == KindInsufficientStock }
func IsAuthorization(err error) bool     { return kindOf(err) == KindAuthorization }
func IsInvalidState(err error) bool      { return kindOf(err) == KindInvalidState }

// KnownKind reports whether err belongs to the taxonomy at all. Handlers use
// it to decide between a mapped client error and a generic internal failure.
func KnownKind(err error) (Kind, bool) {
	k := kindOf(err)
	return k, k != 0
}
