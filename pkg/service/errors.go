package service

import "fmt"

// Kind classifies a service failure. Every error leaving this package
// carries exactly one kind; callers map kinds to transport status codes.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindValidation      Kind = "validation"
	KindInternal        Kind = "internal"
)

// Error is a normalized service failure with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

func unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func notFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: err}
}

// AsError returns the service error inside err, or nil when err is not one.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if svcErr, ok := err.(*Error); ok {
		return svcErr
	}
	return nil
}
