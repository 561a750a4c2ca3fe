package ai

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrMissingCredential is returned before any remote call when no API key is configured.
var ErrMissingCredential = errors.New("ai api key is missing")

// SummaryGenerationError wraps a failed summary request.
type SummaryGenerationError struct {
	Provider string
	Err      error
}

func (e *SummaryGenerationError) Error() string {
	return fmt.Sprintf("failed to generate summary (%s): %v", e.Provider, e.Err)
}

func (e *SummaryGenerationError) Unwrap() error { return e.Err }
