package application

import "errors"

// Error kinds. Every failure returned by this package either wraps one of
// these or is an unexpected infrastructure error (treated as internal).
var (
	ErrUnauthenticated = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden - admin access required")
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrUpstream        = errors.New("identity provider rejected the request")
)

// Error attaches a client-facing message (and optional field details) to an
// error kind.
type Error struct {
	Kind    error
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func validationError(msg string, details map[string]string) *Error {
	return &Error{Kind: ErrValidation, Message: msg, Details: details}
}
