package config

import "github.com/cockroachdb/errors"

// Loading and validation errors.
var (
	ErrNotFound      = errors.New("profile not found")
	ErrUnknownFormat = errors.New("unknown profile format")
	ErrIncludeDepth  = errors.New("include depth exceeded")
	ErrNoServer      = errors.New("profile has no server command or module")
	ErrBadServer     = errors.New("server entry sets both command and module")
)

// ValidationError names the profile field that failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
