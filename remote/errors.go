package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError is returned when the request never produced an HTTP response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DeserializationError is returned when a response body could not be decoded.
type DeserializationError struct {
	Path string
	Body []byte
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Path, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// StatusError is returned for non-2xx responses. Body keeps the raw response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// IsNotFound reports whether err is a 404 from the booking service.
func IsNotFound(err error) bool {
	return HasStatus(err, http.StatusNotFound)
}

// HasStatus reports whether err wraps a *StatusError with the given code.
func HasStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == code
}
