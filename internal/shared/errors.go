// Package shared holds cross-cutting types used by every domain package.
package shared

import "errors"

var (
	// ErrValidation indicates malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates the resource does not exist or is not visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrInvalidOperation indicates the operation is not allowed in the current state.
	ErrInvalidOperation = errors.New("operation not allowed")
	// ErrConflict indicates a lost write race; callers retry internally before escalating.
	ErrConflict = errors.New("write conflict")
	// ErrStorage indicates the underlying transaction aborted; no partial writes remain.
	ErrStorage = errors.New("storage failure")
)
