package scrape

import "fmt"

// ExtractionError represents a failure to parse a single card, page or
// field. It is always recovered at the smallest possible scope and never
// aborts the remaining pages or keywords.
type ExtractionError struct {
	Platform string
	Message  string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error (%s): %s: %v", e.Platform, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error (%s): %s", e.Platform, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// AuthError represents a failed platform login. The platform is disabled
// for the session; other platforms are unaffected.
type AuthError struct {
	Platform string
	Message  string
	Cause    error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("auth error (%s): %s: %v", e.Platform, e.Message, e.Cause)
	}
	return fmt.Sprintf("auth error (%s): %s", e.Platform, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}
