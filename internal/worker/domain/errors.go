package domain

import "errors"

var (
	// ErrInvalidPayload is returned when an event cannot be stored as given
	ErrInvalidPayload = errors.New("invalid event payload")

	// ErrDeliveriesClosed is returned when the broker stops delivering
	ErrDeliveriesClosed = errors.New("delivery channel closed")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
