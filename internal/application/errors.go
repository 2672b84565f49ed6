package application

import "errors"

// Failure kinds returned by the services. Handlers map them to HTTP statuses
// with errors.Is; the wrapped cause is for logs only.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUpstream     = errors.New("upstream failure")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)
