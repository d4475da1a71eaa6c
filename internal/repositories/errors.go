package repositories

import "errors"

// ErrNotFound is returned when a lookup by id or key matches nothing.
var ErrNotFound = errors.New("record not found")
