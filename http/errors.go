// Package http provides the retrying JSON client and error taxonomy shared
// by the issue tracker integrations and notifiers.
package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Sentinels that APIError unwraps to, by status code.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("authentication failed")
	ErrForbidden    = errors.New("permission denied")
	ErrNotFound     = errors.New("resource not found")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrServerError  = errors.New("server error")
)

var statusErrors = map[int]error{
	http.StatusBadRequest:      ErrBadRequest,
	http.StatusUnauthorized:    ErrUnauthorized,
	http.StatusForbidden:       ErrForbidden,
	http.StatusNotFound:        ErrNotFound,
	http.StatusTooManyRequests: ErrRateLimited,
}

// APIError is a non-2xx response from a remote service.
type APIError struct {
	Service    string // "Jira", "Slack", ...
	StatusCode int
	Message    string
	Endpoint   string
	RequestID  string // X-Request-Id, when the service sends one
}

func (e *APIError) Error() string {
	at := e.Endpoint
	if e.RequestID != "" {
		at += " [" + e.RequestID + "]"
	}
	return fmt.Sprintf("%s API error (%d) at %s: %s", e.Service, e.StatusCode, at, e.Message)
}

// Unwrap maps the status code to one of the package sentinels, or nil.
func (e *APIError) Unwrap() error {
	if err, ok := statusErrors[e.StatusCode]; ok {
		return err
	}
	if e.StatusCode >= http.StatusInternalServerError {
		return ErrServerError
	}
	return nil
}

// RateLimitError is returned when retries ran out on 429 responses.
type RateLimitError struct {
	Service    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter <= 0 {
		return e.Service + " rate limit exceeded"
	}
	return fmt.Sprintf("%s rate limit exceeded, retry after %s", e.Service, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsForbidden(err error) bool    { return errors.Is(err, ErrForbidden) }
func IsRateLimited(err error) bool  { return errors.Is(err, ErrRateLimited) }

// IsRetryable reports whether err is a rate limit or a 5xx.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServerError)
}
