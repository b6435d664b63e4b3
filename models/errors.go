package models

import "errors"

var (
	// ErrUnauthorized means no valid credential was presented.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the credential is valid but lacks the admin role.
	ErrForbidden = errors.New("admin access required")
	// ErrNotFound means the requested record does not exist or is not visible.
	ErrNotFound = errors.New("record not found")
	// ErrInconsistentResult means a result's class belongs to another event.
	ErrInconsistentResult = errors.New("result class belongs to a different event")
)

// ValidationError describes malformed caller input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

// StoreError wraps a persistence failure. Its message never includes the
// underlying detail.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return "internal server error" }

func (e *StoreError) Unwrap() error { return e.Err }
