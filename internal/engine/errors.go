package engine

import "errors"

var (
	// ErrNotFound indicates the target entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the mutation would not change state
	// (e.g. deleting an already-deleted post, or a duplicate unique row)
	ErrConflict = errors.New("conflict")

	// ErrContentDeleted indicates the target exists but is soft-deleted
	ErrContentDeleted = errors.New("content deleted")

	// ErrNotOwner indicates the actor does not own the target entity
	ErrNotOwner = errors.New("not owner")
)
