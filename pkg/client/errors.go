package client

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingItems is returned when a 2xx response body has no "items" array.
var ErrMissingItems = errors.New("API response missing or invalid 'items' array")

// RateLimitError signals a 429 response. It is recoverable: the caller is
// expected to wait for Wait and retry the same URL.
type RateLimitError struct {
	// Wait is the server-directed backoff, already defaulted and capped.
	Wait       time.Duration
	StatusCode int
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (%d); Retry-After: %s", e.StatusCode, e.Wait)
}

// APIError represents a non-2xx, non-429 response. It is fatal: the caller
// must not retry.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsRateLimit reports whether err is (or wraps) a rate-limit signal.
func IsRateLimit(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}
