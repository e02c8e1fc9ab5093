// Package domain contains business logic types and errors.
// Domain errors describe what went wrong with the upstream quote provider,
// NOT which HTTP status to answer with. Adapters do that mapping.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUpstreamUnavailable indicates the quote provider could not be reached.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamStatus indicates the quote provider answered with a non-success status.
	ErrUpstreamStatus = errors.New("upstream error status")

	// ErrMalformedResponse indicates the quote provider's payload could not be used.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// UpstreamUnavailableError provides context for network-level failures.
type UpstreamUnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UpstreamUnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("upstream %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("upstream %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UpstreamUnavailableError) Unwrap() error {
	return ErrUpstreamUnavailable
}

// NewUpstreamUnavailableError creates an upstream unavailable error with context.
func NewUpstreamUnavailableError(service, reason string) error {
	return &UpstreamUnavailableError{Service: service, Reason: reason}
}

// UpstreamStatusError carries the status code returned by the provider.
type UpstreamStatusError struct {
	Service    string
	StatusCode int
}

// Error implements the error interface.
func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream %q returned HTTP %d", e.Service, e.StatusCode)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UpstreamStatusError) Unwrap() error {
	return ErrUpstreamStatus
}

// NewUpstreamStatusError creates an upstream status error.
func NewUpstreamStatusError(service string, statusCode int) error {
	return &UpstreamStatusError{Service: service, StatusCode: statusCode}
}

// MalformedResponseError describes a payload that is not a usable quote.
// Field is set when a specific attribute is missing or has the wrong type.
type MalformedResponseError struct {
	Service string
	Field   string
	Reason  string
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed response from %q: field %s %s", e.Service, e.Field, e.Reason)
	}

	return fmt.Sprintf("malformed response from %q: %s", e.Service, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}

// NewMalformedResponseError creates a malformed response error for the whole payload.
func NewMalformedResponseError(service, reason string) error {
	return &MalformedResponseError{Service: service, Reason: reason}
}

// NewMalformedFieldError creates a malformed response error for a single field.
func NewMalformedFieldError(service, field, reason string) error {
	return &MalformedResponseError{Service: service, Field: field, Reason: reason}
}

// IsUpstreamUnavailable checks if an error is an upstream unavailable error.
func IsUpstreamUnavailable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}

// IsUpstreamStatus checks if an error is an upstream status error.
func IsUpstreamStatus(err error) bool {
	return errors.Is(err, ErrUpstreamStatus)
}

// IsMalformedResponse checks if an error is a malformed response error.
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}
