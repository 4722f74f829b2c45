package marketdata

import (
	"errors"
	"fmt"
)

// ErrInterrupted is returned when the pre-call delay is cut short by context
// cancellation. No request is sent in that case.
var ErrInterrupted = errors.New("marketdata: request delay interrupted")

// errRateLimited marks an HTTP 429 reply. It is neutral for the circuit breaker.
var errRateLimited = errors.New("marketdata: rate limited")

// StatusError is a non-2xx reply other than 429.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("marketdata: unexpected status %d: %s", e.StatusCode, e.Body)
}
