package studio

import "errors"

// ValidationError is a submission rejected before any request is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	ErrMissingCredential = &ValidationError{Reason: "api key is not configured"}
	ErrEmptyPrompt       = &ValidationError{Reason: "prompt is empty"}

	// ErrBusy is returned when a generation is already in flight.
	ErrBusy = errors.New("a generation is already in progress")
)
