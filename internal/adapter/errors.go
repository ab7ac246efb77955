package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrSessionClosed marks a verification session that will deliver no
	// further events, either because the caller closed it or because
	// reconnection attempts were exhausted.
	ErrSessionClosed = errors.New("verification session closed")
)

// APIError is the error returned for any non-2xx API response. It preserves
// the raw status and body for logging and wraps the sentinel matching its
// status, so callers can branch with [errors.Is]:
//
//	if errors.Is(err, adapter.ErrUnauthorized) { ... }
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int
	// Body is the trimmed response body, or the standard status text when
	// the body was empty.
	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// Unwrap returns the sentinel for the error's status code, or nil for
// statuses without one.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	case http.StatusInternalServerError:
		return ErrInternalServerError
	case http.StatusBadGateway:
		return ErrBadGateway
	case http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	default:
		return nil
	}
}
