package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
	ErrDecode       = errors.New("malformed response")
)

const (
	defaultErrorMessage = "An error occurred"
	networkErrorMessage = "Network error"
)

// TransportError means no HTTP response was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrUnavailable }

// HTTPError is a response with an error status.
type HTTPError struct {
	Method  string
	URL     string
	Status  int
	Message string
	Body    []byte
}

func newHTTPError(method, url string, status int, body []byte) *HTTPError {
	msg := defaultErrorMessage
	if m := gjson.GetBytes(body, "message"); m.Type == gjson.String && m.String() != "" {
		msg = m.String()
	}
	return &HTTPError{Method: method, URL: url, Status: status, Message: msg, Body: body}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, e.Message)
}

func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrUnavailable:
		return e.Status == http.StatusBadGateway ||
			e.Status == http.StatusServiceUnavailable ||
			e.Status == http.StatusGatewayTimeout
	}
	return false
}

// DecodeError is a response body that could not be decoded.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Describe summarizes err for display. HTTP errors keep their status and
// server message; everything else is reported as a 500 network error.
func Describe(err error) (int, string) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status, he.Message
	}
	return http.StatusInternalServerError, networkErrorMessage
}
