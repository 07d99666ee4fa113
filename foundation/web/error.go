package web

import "github.com/pkg/errors"

// Error is a request error that carries the HTTP status to respond
// with and optional extra fields for the response body.
type Error struct {
	Err    error
	Status int
	Fields map[string]interface{}
}

func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRequestError checks whether err (or anything it wraps) is a *Error.
func IsRequestError(err error) (*Error, bool) {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr, true
	}
	return nil, false
}
