package probe

import (
	"errors"
	"fmt"
)

var (
	// ErrRequest is returned when the service answers with a non-2xx status.
	ErrRequest = errors.New("request failed")

	// ErrInvariant is returned by Check when a summary is inconsistent.
	ErrInvariant = errors.New("summary invariant violated")
)

// APIError carries the service's error body.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap lets callers match ErrRequest.
func (e *APIError) Unwrap() error { return ErrRequest }
