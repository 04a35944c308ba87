package generator

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned when no API key is configured. Generation
// cannot proceed at all, so callers must not mask it with a fallback.
var ErrMissingCredential = errors.New("GROQ_API_KEY environment variable not set")

// RemoteError describes a failed call to the chat-completion API
type RemoteError struct {
	// StatusCode is zero when no HTTP response was received
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("groq api error (status %d): %v", e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("groq api error (status %d): %s", e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("groq api error: %v", e.Err)
	}
	return "groq api error"
}

func (e *RemoteError) Unwrap() error { return e.Err }
