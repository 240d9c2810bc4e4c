package repositories

import "errors"

var (
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey maps Mongo duplicate-key errors (unique email index).
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrVersionConflict means a versioned save lost a concurrent update.
	ErrVersionConflict = errors.New("version conflict")
)
