// Package api provides the HTTP/JSON client for the Handl backend.
// This file defines the error taxonomy surfaced by the client.
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned when the server rejects the credential (401).
// The client has already fired the auth-expired handler by the time a
// caller sees this error.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a non-2xx response carrying the server-provided message.
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: server returned %d", e.Status)
}

// IsValidation reports whether the error is a 4xx validation failure
// whose message should be shown next to the offending form.
func (e *Error) IsValidation() bool {
	return e.Status >= 400 && e.Status < 500 && e.Status != http.StatusUnauthorized
}

// IsServerError reports whether the error is a 5xx failure, surfaced to
// the user only as a generic message.
func (e *Error) IsServerError() bool {
	return e.Status >= 500
}

// UserMessage extracts the message a form should display for err:
// the server text for validation errors, a generic fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.IsValidation() && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
