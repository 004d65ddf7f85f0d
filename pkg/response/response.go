package response

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation   Kind = "VALIDATION_ERROR"
	KindNotFound     Kind = "NOT_FOUND"
	KindStorage      Kind = "STORAGE_ERROR"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindRateLimited  Kind = "RATE_LIMITED"
	KindTimeout      Kind = "REQUEST_TIMEOUT"
	KindInternal     Kind = "INTERNAL_ERROR"
)

// Error is the only error shape that crosses from services to handlers.
// Err carries the client-facing message; Cause keeps the internal detail.
type Error struct {
	Code  int
	Kind  Kind
	Err   error
	Cause error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

// WithCause returns a copy of the error carrying cause. The sentinel itself is never mutated.
func (e *Error) WithCause(cause error) error {
	return &Error{Code: e.Code, Kind: e.Kind, Err: e.Err, Cause: cause}
}

func NewError(code int, err string) error {
	return &Error{Code: code, Kind: kindFromCode(code), Err: errors.New(err)}
}

func NewValidationError(err string) error {
	return NewError(http.StatusBadRequest, err)
}

func NewNotFoundError(err string) error {
	return NewError(http.StatusNotFound, err)
}

func NewStorageError(err string) error {
	return NewError(http.StatusInternalServerError, err)
}

// Wrap attaches cause to sentinel, which must be a *Error created by this package.
func Wrap(sentinel error, cause error) error {
	var e *Error
	if !errors.As(sentinel, &e) {
		return sentinel
	}
	return e.WithCause(cause)
}

// KindOf reports the taxonomy kind of err. Anything that is not a *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsStorage(err error) bool {
	return KindOf(err) == KindStorage
}

func kindFromCode(code int) Kind {
	switch {
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindUnauthorized
	case code == http.StatusTooManyRequests:
		return KindRateLimited
	case code == http.StatusRequestTimeout:
		return KindTimeout
	case code >= 400 && code < 500:
		return KindValidation
	case code == http.StatusInternalServerError || code == http.StatusServiceUnavailable:
		return KindStorage
	default:
		return KindInternal
	}
}
