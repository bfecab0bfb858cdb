package api

import (
	"errors"
	"fmt"

	"github.com/joshnies/pocket/lib/endpoints"
)

var (
	ErrUnknownEndpoint   = errors.New("unknown endpoint")
	ErrMissingCredential = errors.New("no authorization token found, please log in")
	ErrTransport         = errors.New("request failed")
	ErrServer            = errors.New("server error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrInvalidBody       = errors.New("invalid request body")
)

// Error is returned by every failed dispatch.
// Kind is one of the Err* sentinels above, so callers can use errors.Is.
type Error struct {
	Kind     error
	Endpoint endpoints.Key
	// HTTP status code (server errors only).
	Status int
	// Server-provided message (server errors only).
	Message string
	// Underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrServer:
		return e.Message
	case ErrUnknownEndpoint:
		return fmt.Sprintf("endpoint \"%s\" not found in API configuration", e.Endpoint)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Kind)
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Returns the server-provided message of a server error, or the error text otherwise.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == ErrServer {
		return apiErr.Message
	}

	return err.Error()
}
