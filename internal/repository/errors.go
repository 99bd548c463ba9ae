package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateIdentifier indicates the login identifier is already taken
	// within the role's namespace. Raised from the unique constraint, which
	// is the authoritative guard against concurrent registration.
	ErrDuplicateIdentifier = errors.New("repository: identifier already exists")
	// ErrInvalidColumn indicates an update referenced a column outside the
	// allow-list for the entity.
	ErrInvalidColumn = errors.New("repository: column not permitted")
)
