package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured means the Gemini credential was missing at startup.
	// The service stays reachable and every call fails fast with this.
	ErrNotConfigured = errors.New("gemini api key is not configured")

	// ErrEmptyResponse means the model answered successfully but carried no
	// candidate text.
	ErrEmptyResponse = errors.New("model response contained no text")
)

// UpstreamError relays a non-success status from the generation API without
// swallowing the original status or message.
type UpstreamError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini api error: %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini api error: %d: %s", e.StatusCode, e.Message)
}
