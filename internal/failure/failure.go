// Package failure classifies the errors a pipeline surfaces to the user.
package failure

import (
	"errors"
	"fmt"
)

// Kind names a class of user-visible failure.
type Kind string

const (
	KindNone                 Kind = ""
	KindConfigurationMissing Kind = "configuration_missing"
	KindInvalidInput         Kind = "invalid_input"
	KindNetwork              Kind = "network_failure"
	KindHTTPStatus           Kind = "http_status_failure"
)

// Error is a classified failure. StatusCode is set for KindHTTPStatus.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with the given kind.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Status wraps err as an HTTP status failure.
func Status(code int, err error) *Error {
	return &Error{Kind: KindHTTPStatus, StatusCode: code, Err: err}
}

// ConfigurationMissing reports a required setting that is empty.
func ConfigurationMissing(setting string) *Error {
	return &Error{
		Kind: KindConfigurationMissing,
		Err:  fmt.Errorf("%s is not set", setting),
	}
}

// InvalidInput reports a user input that cannot be processed.
func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindNone
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}

// Message renders err for display, prefixed by a short description of its kind.
func Message(err error) string {
	if err == nil {
		return ""
	}
	switch KindOf(err) {
	case KindConfigurationMissing:
		return "configuration error: " + err.Error()
	case KindInvalidInput:
		return "invalid input: " + err.Error()
	case KindNetwork:
		return "network error: " + err.Error()
	case KindHTTPStatus:
		return fmt.Sprintf("request failed with status %d: %s", StatusCodeOf(err), err.Error())
	default:
		return err.Error()
	}
}

// Retryable reports whether err is a network or HTTP status failure.
func Retryable(err error) bool {
	k := KindOf(err)
	return k == KindNetwork || k == KindHTTPStatus
}

// RetryableUpstream is like Retryable but only accepts status failures whose
// code is transient. Auth and quota errors from an API are not retried.
func RetryableUpstream(err error) bool {
	switch KindOf(err) {
	case KindNetwork:
		return true
	case KindHTTPStatus:
		return IsTransientHTTPStatus(StatusCodeOf(err))
	default:
		return false
	}
}

// IsTransientHTTPStatus returns true if the HTTP status code indicates a
// transient server-side issue that is safe to retry.
func IsTransientHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 408, // Request Timeout
		429, // Too Many Requests
		500, // Internal Server Error
		502, // Bad Gateway
		503, // Service Unavailable
		504: // Gateway Timeout
		return true
	default:
		return false
	}
}
