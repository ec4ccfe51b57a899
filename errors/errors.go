package errors

import "errors"

// Common CLI errors with actionable guidance.
var (
	// ErrBug marks a failure that indicates a defect rather than a user or
	// environment problem.
	ErrBug = errors.New("internal error")

	// ErrNotAuthenticated indicates a tracker rejected the credentials.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrConnectionFailed indicates a remote API is unreachable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrPermissionDenied indicates insufficient permissions.
	ErrPermissionDenied = errors.New("permission denied")
)

// Bug wraps err as an internal error. The result matches both ErrBug and err.
func Bug(err error) error {
	if err == nil {
		return nil
	}
	return &bugError{err: err}
}

type bugError struct{ err error }

func (e *bugError) Error() string   { return "bug: " + e.err.Error() }
func (e *bugError) Unwrap() []error { return []error{ErrBug, e.err} }

// Suggester is implemented by errors that carry their own advice for the
// user. Describe prefers it over the built-in table.
type Suggester interface {
	error
	Suggestion() string
}
