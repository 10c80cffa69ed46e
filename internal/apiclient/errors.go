package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed backend call. It is derived once, here, so call
// sites never switch on raw status codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindValidation
	KindServerError
	KindNetwork
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindServerError:
		return "server_error"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// KindFromStatus maps an HTTP status from the backend to a Kind.
func KindFromStatus(status int) Kind {
	switch {
	case status == 0:
		return KindNetwork
	case status == http.StatusRequestTimeout:
		return KindTimeout
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return KindValidation
	case status >= 500:
		return KindServerError
	default:
		return KindUnknown
	}
}

// Error is the single failure shape of the client: message, status and the
// parsed response body (JSON value or raw text).
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Data    any
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts the client error from err.
func AsError(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// KindOf reports the kind of err, KindUnknown for foreign errors.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return KindUnknown
}

// StatusOf reports the HTTP status the page should answer with for err.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		if e, ok := AsError(err); ok && e.Status != 0 {
			return e.Status
		}
		return http.StatusBadRequest
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// UserMessage is the one place backend failures become user-facing text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	e, ok := AsError(err)
	if !ok {
		return "Something went wrong. Please try again."
	}
	switch e.Kind {
	case KindUnauthorized:
		return "Your session has expired. Please sign in again."
	case KindForbidden:
		return "Access denied."
	case KindNotFound:
		return "The requested item was not found."
	case KindValidation:
		if e.Message != "" {
			return e.Message
		}
		return "Some of the submitted details are invalid."
	case KindTimeout:
		return "The server took too long to respond. Please try again."
	case KindNetwork:
		return "Network error. Check your connection and try again."
	case KindServerError:
		return "The booking service is unavailable right now."
	default:
		return "Something went wrong. Please try again."
	}
}
