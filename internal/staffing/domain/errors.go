package domain

import "errors"

// Sentinel errors for the three failure kinds the use cases produce.
// Callers wrap these with context via fmt.Errorf("...: %w", Err...) and the
// HTTP layer maps them to status codes with errors.Is.
var (
	// ErrNotFound marks a referenced entity that is absent or logically deleted.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a violated uniqueness or capacity invariant.
	ErrConflict = errors.New("conflict")
	// ErrInvalid marks malformed or incoherent input.
	ErrInvalid = errors.New("invalid")
)
