// Package apperrors classifies the failures the editor reports to the user.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind distinguishes where a failure originated.
type Kind string

const (
	// KindTransport covers requests that never produced a usable response.
	KindTransport Kind = "transport"
	// KindServer covers responses with success:false or an error status.
	KindServer Kind = "server"
	// KindValidation covers input rejected locally before any request.
	KindValidation Kind = "validation"
)

// Error carries a user-facing message and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return defaultMessage(e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultMessage(kind Kind) string {
	switch kind {
	case KindTransport:
		return "Could not reach the server."
	case KindServer:
		return "The server reported an error."
	case KindValidation:
		return "Invalid input."
	default:
		return "Request failed."
	}
}

// New builds an *Error. A blank message falls back to the cause or a kind default.
func New(kind Kind, message string, cause error) error {
	return &Error{Kind: kind, Message: strings.TrimSpace(message), Cause: cause}
}

// Transport wraps a network or decoding failure.
func Transport(op string, err error) error {
	return New(KindTransport, fmt.Sprintf("%s: %v", op, err), err)
}

// Server reports a logical failure returned by the API.
func Server(message string) error {
	if strings.TrimSpace(message) == "" {
		message = defaultMessage(KindServer)
	}
	return New(KindServer, message, nil)
}

// Validation reports a client-side rejection.
func Validation(format string, args ...any) error {
	return New(KindValidation, fmt.Sprintf(format, args...), nil)
}

// KindOf reports the Kind of err when it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// Is reports whether err has the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// UserMessage returns the text shown in an alert for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
