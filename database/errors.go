package database

import "errors"

// Shared error taxonomy. Both backends (embedded sqlite and the remote API
// client) reduce their failures to these categories so callers only ever
// branch on five cases.
var (
	// ErrNotFound means the referenced board, column or card does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input was rejected: empty-after-trim text,
	// a board name shorter than four characters, or a malformed PIN.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized means a mutating call was made without a valid PIN.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict means a board name (slug) is already taken.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable means the transport or storage engine failed.
	ErrUnavailable = errors.New("unavailable")
)
