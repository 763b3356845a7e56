package api

import (
	"errors"
	"fmt"
)

// ErrUnknownCollection is returned when a collection name is not served by the backend.
var ErrUnknownCollection = errors.New("unknown collection")

// TransportError reports a failed collection fetch: the request could not be
// sent, the connection failed, or the backend answered with a non-2xx status.
type TransportError struct {
	Collection Collection
	URL        string
	StatusCode int // 0 when no response was received
	RequestID  string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %s returned status %d: %v", e.Collection, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.Collection, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
