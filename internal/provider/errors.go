package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a provider failure.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindNotFound   Kind = "not_found"
	KindAPIError   Kind = "api_error"
	KindValidation Kind = "validation"
	KindConfig     Kind = "config"
)

// User-facing messages. None of them carry provider or configuration detail.
const (
	MsgNetwork         = "Unable to connect to the weather service. Please check your internet connection."
	MsgNotFound        = "Location not found. Please check the spelling or try a different search term."
	MsgUnavailable     = "The weather service is temporarily unavailable. Please try again later."
	MsgAPIError        = "Unable to retrieve weather data. Please try again."
	MsgInvalidResponse = "Received an invalid response from the weather service."
	MsgQueryRequired   = "Please enter a location to search."
	MsgConfig          = "Unable to connect to the weather service. Please try again later."
)

// Error is the only error type returned by Client. Message is safe to show
// to end users; Err is kept for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there
// is none.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ""
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// statusError maps a non-2xx HTTP status to an *Error. It returns nil for 2xx.
func statusError(status int) *Error {
	cause := fmt.Errorf("unexpected status: %d", status)
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusBadRequest || status == http.StatusNotFound:
		return newError(KindNotFound, MsgNotFound, cause)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return newError(KindConfig, MsgConfig, cause)
	case status >= 500:
		return newError(KindAPIError, MsgUnavailable, cause)
	default:
		return newError(KindAPIError, MsgAPIError, cause)
	}
}

// transient reports whether a status is worth retrying.
func transient(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
