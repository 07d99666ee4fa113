// Package postgres holds the sentinel errors shared by the postgres
// repositories. They name the condition precisely so controllers and
// tests can match on them; the HTTP status travels separately via
// web.Error.
package postgres

import "github.com/pkg/errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("only allowed to register attendance for your own worker id")
	ErrInactiveWorker  = errors.New("worker is inactive")
	ErrInactiveSite    = errors.New("site is inactive")
	ErrExpiredCode     = errors.New("qr code expired")
	ErrOutOfRange      = errors.New("outside the permitted radius for the site")
	ErrAlreadyApproved = errors.New("attendance is already approved")
)
