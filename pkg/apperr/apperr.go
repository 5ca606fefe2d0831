// Package apperr defines the error taxonomy every failure funnels through.
// Handlers never pick HTTP status codes themselves; they hand errors to the
// response layer which maps kinds to statuses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown    Kind = iota
	KindValidation      // malformed or conflicting input
	KindAuth            // missing or invalid credentials/token
	KindForbidden       // authenticated but not allowed
	KindNotFound        // referenced entity absent
	KindDelivery        // external collaborator failed (mail, geocode)
	KindIO              // filesystem or storage failure
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error          { return &Error{Kind: KindValidation, Message: msg} }
func Auth(msg string) *Error                { return &Error{Kind: KindAuth, Message: msg} }
func Forbidden(msg string) *Error           { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error            { return &Error{Kind: KindNotFound, Message: msg} }
func Delivery(msg string, err error) *Error { return &Error{Kind: KindDelivery, Message: msg, Err: err} }
func IO(msg string, err error) *Error       { return &Error{Kind: KindIO, Message: msg, Err: err} }

// KindOf extracts the taxonomy kind from any error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Status maps a kind to its HTTP status code. Unknown errors default to 500
// so unexpected failures never leak internals with a 2xx/4xx.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDelivery, KindIO:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the caller-safe message for an error. Errors outside
// the taxonomy get a generic message.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
