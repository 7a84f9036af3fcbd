// Package client implements the typed HTTP surface against the aviation
// backend that owns all entity data. Callers get parsed records or one
// of three error kinds; there is no retry policy here.
package client

import "fmt"

// NetworkError means the request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ApiError means the backend answered with a non-2xx status. The body is
// deliberately not parsed; deletion failures and the like surface as
// generic messages upstream.
type ApiError struct {
	StatusCode int
	Status     string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("backend returned %s", e.Status)
}

// ValidationError is raised client-side before any request is sent, for
// example when a required relation has not been selected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
