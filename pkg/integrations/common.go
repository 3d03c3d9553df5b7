package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds every upstream request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when an upstream resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-success responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the given timeout.
// A non-positive timeout selects DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// URLEncode percent-encodes a path segment.
// This is a convenience wrapper around [url.PathEscape].
func URLEncode(s string) string { return url.PathEscape(s) }
