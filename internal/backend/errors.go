package backend

import (
	"errors"
	"fmt"
)

// ValidationError indicates a request was rejected locally before any
// network I/O, e.g. a token that fails the length sanity check.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// BackendError carries an explicit error payload reported by the backend
// service. The message is surfaced to the user as-is (escaped at render
// time) since it typically points at an expired token or missing
// server-side configuration.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error: %s", e.Message)
}

// NetworkError indicates a transport-level failure: the request did not
// complete, the status was non-2xx without an error payload, or the
// response body could not be parsed.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsValidationError reports whether err (or its chain) is a ValidationError.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsBackendError reports whether err (or its chain) is a BackendError.
func IsBackendError(err error) bool {
	var b *BackendError
	return errors.As(err, &b)
}

// IsNetworkError reports whether err (or its chain) is a NetworkError.
func IsNetworkError(err error) bool {
	var n *NetworkError
	return errors.As(err, &n)
}
