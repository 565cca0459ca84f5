package model

import "errors"

// Sentinel errors shared by the service and store layers. The HTTP layer
// maps them onto statuses in one place (respond.WriteServiceError).
var (
	// ErrNotFound marks a missing property, user, or planning session.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks rejected input, like weights outside 1..10.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks writes that lost to concurrent state.
	ErrConflict = errors.New("conflict")

	// ErrLocationNotFound signals that the geocoding provider could not
	// resolve a place name. Callers must treat this distinctly from an
	// empty (but successful) result set.
	ErrLocationNotFound = errors.New("location not found")
)
