package venv

import "errors"

// Sentinel errors returned by registry operations. Callers branch with
// errors.Is; wrapped forms carry the offending path or name.
var (
	// ErrNotFound means the referenced environment directory does not exist.
	ErrNotFound = errors.New("environment directory not found")

	// ErrInvalidEnvironment means the directory exists but failed structural
	// verification. Add accepts it anyway when the force flag is set.
	ErrInvalidEnvironment = errors.New("not a valid virtual environment")

	// ErrNotRegistered means no registry record matched the given path or
	// project name.
	ErrNotRegistered = errors.New("environment not registered")
)
