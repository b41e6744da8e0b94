// Package errors defines the error taxonomy shared by the client and its middleware.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTemporary = errors.New("temporary error")
	ErrPermanent = errors.New("permanent error")

	ErrUnreachable = errors.New("unreachable code")

	ErrRequestCreation     = errors.New("request creation error")
	ErrBodyMarshalConflict = errors.New("body and marshal body conflict")

	ErrNetwork   = errors.New("network error")
	ErrTimeout   = errors.New("timeout error")
	ErrBadStatus = errors.New("bad status code")

	ErrSingleFlight      = errors.New("single flight error")
	ErrRetryFailed       = errors.New("retry failed")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrCircuitOpen       = errors.New("circuit breaker is open")
	ErrCircuitExhausted  = errors.New("circuit breaker is exhausted")
)

// APIError is the normalized form of a non-2xx backend response.
// StatusCode is always set; Message carries the backend's JSON error
// message when one was present in the response body.
type APIError struct {
	StatusCode int
	Message    string
}

// NewAPIError creates an APIError for the given status and backend message.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %d: %s", ErrBadStatus.Error(), e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %d", ErrBadStatus.Error(), e.StatusCode)
}

// Unwrap lets errors.Is treat every APIError as an ErrBadStatus.
func (e *APIError) Unwrap() error {
	return ErrBadStatus
}

// StatusCode extracts the HTTP status from an error chain. The second
// return is false when no backend response was received (transport
// failure, timeout, request creation).
func StatusCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}

// ErrorMessage extracts the backend's error message from an error chain,
// falling back to the status text when the backend sent no message and
// to the error string when there was no response at all.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return http.StatusText(apiErr.StatusCode)
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// IsClientError reports whether the error chain carries a 4xx backend response.
func IsClientError(err error) bool {
	status, ok := StatusCode(err)
	return ok && status >= 400 && status < 500
}

// IsServerError reports whether the error chain carries a 5xx backend response.
func IsServerError(err error) bool {
	status, ok := StatusCode(err)
	return ok && status >= 500
}

// IsNetworkError reports whether the request failed before any response arrived.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrTimeout)
}

// IsTemporary returns true if the error is considered temporary and can be retried.
// 4xx responses are permanent: retrying the same input cannot succeed.
func IsTemporary(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrTemporary)
}

// Is reports whether any error in err's chain is an instance of target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
