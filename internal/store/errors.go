package store

import "errors"

var (
	// ErrNotFound is returned when no application exists for the given id.
	ErrNotFound = errors.New("application not found")

	// ErrInvalidState is returned when an operation is not legal in the
	// application's current lifecycle status.
	ErrInvalidState = errors.New("operation not allowed in current status")

	// ErrConflict is returned when a staged document id no longer matches
	// the record, meaning another writer got there first.
	ErrConflict = errors.New("concurrent modification detected")
)
