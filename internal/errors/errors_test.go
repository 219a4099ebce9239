package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNetworkError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *NetworkError
		expected string
	}{
		{
			name:     "with url",
			err:      NewNetworkError("search", "https://de.wikipedia.org/w/api.php", errors.New("connection refused")),
			expected: "search: network error calling https://de.wikipedia.org/w/api.php: connection refused",
		},
		{
			name:     "without url",
			err:      NewNetworkError("langlinks", "", errors.New("circuit open")),
			expected: "langlinks: network error: circuit open",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("NetworkError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: no such host")
	err := NewNetworkError("search", "", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestUpstreamError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *UpstreamError
		expected string
	}{
		{
			name:     "error envelope",
			err:      NewUpstreamError("search", 200, "badvalue", "Unrecognized value for parameter \"list\""),
			expected: "search: API error [badvalue]: Unrecognized value for parameter \"list\"",
		},
		{
			name:     "status with body",
			err:      NewUpstreamError("pageprops", 503, "", "Service Unavailable"),
			expected: "pageprops: API returned status 503: Service Unavailable",
		},
		{
			name:     "status only",
			err:      NewUpstreamError("langlinks", 404, "", ""),
			expected: "langlinks: API returned status 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("UpstreamError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewParseError("search", cause)

	if got, want := err.Error(), "search: unexpected response: unexpected end of JSON input"; got != want {
		t.Errorf("ParseError.Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name: "with field and value",
			err: &ValidationError{
				Field:   "language",
				Value:   "EN!",
				Message: "is not a Wikipedia language code",
			},
			expected: "validation failed for language=\"EN!\": is not a Wikipedia language code",
		},
		{
			name: "with field only",
			err: &ValidationError{
				Field:   "term",
				Message: "is required",
			},
			expected: "validation failed for term: is required",
		},
		{
			name: "message only",
			err: &ValidationError{
				Message: "invalid input",
			},
			expected: "validation failed: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("page_id", "-1", "must be positive")

	if err.Field != "page_id" {
		t.Errorf("Field = %q, want %q", err.Field, "page_id")
	}
	if err.Value != "-1" {
		t.Errorf("Value = %q, want %q", err.Value, "-1")
	}
	if err.Message != "must be positive" {
		t.Errorf("Message = %q, want %q", err.Message, "must be positive")
	}
}

func TestIsHelpers(t *testing.T) {
	networkErr := NewNetworkError("search", "", errors.New("boom"))
	upstreamErr := NewUpstreamError("search", 500, "", "")
	parseErr := NewParseError("search", errors.New("bad json"))
	validationErr := NewValidationError("term", "", "is required")
	plainErr := errors.New("plain error")

	tests := []struct {
		name  string
		check func(error) bool
		match error
	}{
		{"IsNetwork", IsNetwork, networkErr},
		{"IsUpstream", IsUpstream, upstreamErr},
		{"IsParse", IsParse, parseErr},
		{"IsValidation", IsValidation, validationErr},
	}

	all := []error{networkErr, upstreamErr, parseErr, validationErr, plainErr, nil}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, err := range all {
				want := err == tt.match
				if got := tt.check(err); got != want {
					t.Errorf("%s(%v) = %v, want %v", tt.name, err, got, want)
				}
			}
			wrapped := fmt.Errorf("tool failed: %w", tt.match)
			if !tt.check(wrapped) {
				t.Errorf("%s should see through wrapping", tt.name)
			}
		})
	}
}
