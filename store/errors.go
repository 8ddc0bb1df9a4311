package store

import "errors"

// Predefined errors for the store layer. Stores wrap driver errors with
// fmt.Errorf("context: %w", err); handlers translate these into
// HTTP-appropriate apperrors.
var (
	// ErrNotFound indicates that a requested resource was not found or is
	// soft-deleted.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates a uniqueness conflict on create.
	ErrConflict = errors.New("conflict")

	// ErrVersionConflict indicates a concurrent writer updated the resource
	// first; the caller should re-read and retry.
	ErrVersionConflict = errors.New("version conflict")
)
