package repository

import "errors"

// ErrNotFound is returned by adapters when no record matches the id or key,
// including ids the backing store cannot parse. Any other error from an
// adapter means the store itself failed.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique key already exists.
var ErrDuplicate = errors.New("duplicate record")
