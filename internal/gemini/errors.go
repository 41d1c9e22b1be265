package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when no API key is available. Callers should
	// check availability up front and skip the request entirely.
	ErrNotConfigured = errors.New("AI functionality is disabled: Gemini API key is not configured")

	// ErrNoImageReturned is returned when the image model responds without an image part.
	ErrNoImageReturned = errors.New("no image data found in the API response")

	// ErrEmptyResponse is returned when the text model responds without text.
	ErrEmptyResponse = errors.New("received empty response from Gemini API")
)

// RemoteError wraps a failed call to the generation API. The underlying
// message is preserved for display.
type RemoteError struct {
	// Op names the failed operation, e.g. "generate image".
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// FetchError is returned when downloading a finished artifact gets a non-2xx response.
type FetchError struct {
	Status int
	Body   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch artifact: status %d: %s", e.Status, e.Body)
}

// truncateString truncates a string to maxLen, appending "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// ValidationError rejects a request before anything is sent.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
