// Package errors provides shared error types for the Wikipedia client.
package errors

import (
	"errors"
	"fmt"
)

// NetworkError indicates the request never produced an HTTP response
// (DNS, connection, TLS, read failures, or an open circuit breaker).
type NetworkError struct {
	Op  string // operation, e.g. "search", "langlinks"
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s: network error calling %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a NetworkError.
func NewNetworkError(op, url string, err error) *NetworkError {
	return &NetworkError{Op: op, URL: url, Err: err}
}

// UpstreamError indicates the API answered, but not with usable data:
// a non-200 status, or a MediaWiki error envelope in a 200 body.
type UpstreamError struct {
	Op         string
	StatusCode int    // HTTP status (200 for error envelopes)
	Code       string // MediaWiki error code, e.g. "badvalue"
	Info       string // MediaWiki error text or truncated body
}

func (e *UpstreamError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: API error [%s]: %s", e.Op, e.Code, e.Info)
	}
	if e.Info != "" {
		return fmt.Sprintf("%s: API returned status %d: %s", e.Op, e.StatusCode, e.Info)
	}
	return fmt.Sprintf("%s: API returned status %d", e.Op, e.StatusCode)
}

// NewUpstreamError creates an UpstreamError.
func NewUpstreamError(op string, statusCode int, code, info string) *UpstreamError {
	return &UpstreamError{Op: op, StatusCode: statusCode, Code: code, Info: info}
}

// ParseError indicates the response body did not match the expected schema.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: unexpected response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError.
func NewParseError(op string, err error) *ParseError {
	return &ParseError{Op: op, Err: err}
}

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string // field name that failed validation
	Value   string // the invalid value (may be empty)
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsNetwork returns true if err is or wraps a NetworkError.
func IsNetwork(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

// IsUpstream returns true if err is or wraps an UpstreamError.
func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

// IsParse returns true if err is or wraps a ParseError.
func IsParse(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// IsValidation returns true if err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
