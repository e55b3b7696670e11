package domain

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application.
var (
	// ErrNoAddress means no usable local IP address could be determined, so
	// there is nothing to reconcile against.
	ErrNoAddress = errors.New("no usable local address")

	// ErrUnauthorized means the appliance rejected the configured
	// credentials. Not worth retrying within a run.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError represents a decodable error response from the appliance.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("appliance returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("appliance returned status %d: %s", e.StatusCode, e.Message)
}
