package image

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Request is everything needed for one call to the generation endpoint.
type Request struct {
	BaseURL    string
	Credential string
	Prompt     string
	Seed       int64
	Timeout    time.Duration
}

type Generator interface {
	Generate(context.Context, Request) ([]byte, error)
}

// ErrMalformedResponse is returned when the endpoint answers 200 without usable image data.
var ErrMalformedResponse = errors.New("api returned success but no image data")

// NetworkError wraps transport failures, including the request timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// RemoteError is a non-200 answer from the endpoint.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("error %d: %s", e.StatusCode, e.Body)
}
