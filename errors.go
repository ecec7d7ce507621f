package guidepost

import (
	"errors"

	"github.com/guidepost/guidepost/store"
)

var (
	// Not found errors.
	ErrSessionNotFound = errors.New("guidepost: session not found")

	// Validation errors.
	ErrValidation     = errors.New("guidepost: invalid input")
	ErrUnknownStep    = errors.New("guidepost: unknown step")
	ErrEmptySessionID = errors.New("guidepost: empty session id")

	// Lifecycle errors.
	ErrClosed = errors.New("guidepost: navigator closed")
)

// Retryable classifies an error for the retry policy. Not-found,
// validation, and corrupted-data failures are terminal: retrying cannot
// fix them. Everything else is treated as transient.
func Retryable(err error) bool {
	switch {
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrUnknownStep),
		errors.Is(err, ErrEmptySessionID),
		errors.Is(err, store.ErrCorrupt):
		return false
	}
	return true
}
