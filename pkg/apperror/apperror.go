// Package apperror is the error taxonomy shared by services and controllers.
//
// Services return *Error values; controllers hand them to response.Fail,
// which maps the Kind onto an HTTP status:
//
//	Validation -> 400
//	Conflict   -> 400
//	Auth       -> 401
//	Internal   -> 500
//
// Anything that is not an *Error is treated as Internal.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	Internal Kind = iota
	Validation
	Conflict
	Auth
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case Auth:
		return "auth"
	default:
		return "internal"
	}
}

// Status is the HTTP status code for k.
func (k Kind) Status() int {
	switch k {
	case Validation, Conflict:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure with a message safe to show the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error returns Message; constructors that wrap a cause already include it.
func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func NewValidation(msg string) *Error { return &Error{Kind: Validation, Message: msg} }
func NewConflict(msg string) *Error   { return &Error{Kind: Conflict, Message: msg} }
func NewAuth(msg string) *Error       { return &Error{Kind: Auth, Message: msg} }

// NewInternal wraps err. The store message is appended to msg so operators
// can see it in the response body.
func NewInternal(msg string, err error) *Error {
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &Error{Kind: Internal, Message: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Status returns the HTTP status for err.
func Status(err error) int { return KindOf(err).Status() }

// Message returns the caller-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
