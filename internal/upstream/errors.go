package upstream

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the API has no record for the requested ID.
var ErrNotFound = errors.New("record not found")

// HTTPError is a non-2xx response from the upstream API. Callers treat it as
// recoverable: nothing local is mutated before confirmed success.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}
