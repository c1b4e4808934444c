// Package fetch provides the polite HTTP transport shared by all scrapers:
// robots.txt policy checks, randomized delays, user-agent rotation and
// retry with exponential backoff.
package fetch

import "fmt"

// PolicyError indicates that robots.txt disallows fetching a URL.
// It is never retried; callers log and skip.
type PolicyError struct {
	URL       string
	UserAgent string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("policy error: robots.txt disallows %s for agent %q", e.URL, e.UserAgent)
}

// StatusError indicates a terminal, non-retryable HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status error: HTTP %d for %s", e.StatusCode, e.URL)
}

// NetworkError indicates the request could not complete after retries.
type NetworkError struct {
	URL     string
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("network error for %s: %s", e.URL, e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}
