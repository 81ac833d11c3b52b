package ads

import (
	"errors"
	"fmt"
)

// Common errors returned by the ADS client.
var (
	// ErrMissingToken indicates no API token was configured.
	ErrMissingToken = errors.New("ADS API token not set (ADS_API_TOKEN)")

	// ErrNotFound indicates the library was not found.
	ErrNotFound = errors.New("not found in ADS")

	// ErrAuthError indicates an authentication error (missing/invalid token,
	// or a private library the token cannot read).
	ErrAuthError = errors.New("ADS authentication error")

	// ErrRateLimited indicates the daily query quota has been exceeded.
	ErrRateLimited = errors.New("ADS rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with ADS")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from ADS")
)

// APIError represents an error status from the ADS API.
type APIError struct {
	StatusCode int
	Message    string
	Library    string // For context in library errors
}

func (e *APIError) Error() string {
	if e.Library != "" {
		return fmt.Sprintf("ADS API error (status %d): %s (library: %s)", e.StatusCode, e.Message, e.Library)
	}
	return fmt.Sprintf("ADS API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) || errors.Is(err, ErrMissingToken) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
