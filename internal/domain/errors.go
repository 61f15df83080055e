package domain

import "errors"

// Sentinel errors for the domain layer. Repositories wrap these so callers
// can branch with errors.Is without depending on the storage backend.
var (
	ErrNotFound = errors.New("domain: not found")
	ErrConflict = errors.New("domain: conflict")
)
