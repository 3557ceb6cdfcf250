package errors

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid")
	ErrConflict     = errors.New("conflict")
	ErrTooLarge     = errors.New("too large")
	ErrInternal     = errors.New("internal")
)

const DefaultMessage = "Erro interno do servidor"

// Error pairs one of the sentinel kinds with the message shown to the client.
type Error struct {
	kind  error
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

func (e *Error) Message() string {
	return e.msg
}

func New(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func Wrap(kind error, msg string, cause error) error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

func Invalid(msg string) error      { return New(ErrInvalid, msg) }
func NotFound(msg string) error     { return New(ErrNotFound, msg) }
func Unauthorized(msg string) error { return New(ErrUnauthorized, msg) }
func Forbidden(msg string) error    { return New(ErrForbidden, msg) }
func Conflict(msg string) error     { return New(ErrConflict, msg) }

func Internal(msg string, cause error) error {
	return Wrap(ErrInternal, msg, cause)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

type statusCoder interface {
	StatusCode() int
}

// Status maps err to the HTTP status it should be rendered with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	var sc statusCoder
	if errors.As(err, &sc) && sc.StatusCode() >= 400 {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing text for err. Errors without an explicit
// message never leak their internals.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.msg != "" {
		return appErr.msg
	}
	return DefaultMessage
}
