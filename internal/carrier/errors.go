package carrier

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrUnsupported is returned by providers that do not implement an
// operation.
var ErrUnsupported = errors.New("operation not supported by carrier")

// ErrAllCategoriesFailed is returned when every service category request
// failed and no fallback rates are configured. It distinguishes total
// failure from "no rates matched".
var ErrAllCategoriesFailed = errors.New("all rate categories failed")

// ErrorKind classifies a carrier failure for retry decisions.
type ErrorKind int

const (
	// KindUnknown is the fallback classification.
	KindUnknown ErrorKind = iota
	// KindAuthenticationFailed covers 401 responses.
	KindAuthenticationFailed
	// KindRateLimitExceeded covers 429 responses.
	KindRateLimitExceeded
	// KindServiceUnavailable covers 5xx responses.
	KindServiceUnavailable
	// KindValidation covers 4xx responses other than 401/429.
	KindValidation
	// KindNetwork covers transport failures: refused connections, timeouts.
	KindNetwork
)

// String returns the wire-friendly name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindAuthenticationFailed:
		return "authentication_failed"
	case KindRateLimitExceeded:
		return "rate_limit_exceeded"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindValidation:
		return "validation_error"
	case KindNetwork:
		return "network_error"
	default:
		return "unknown_error"
	}
}

// Error is a classified carrier failure. Validation errors carry the
// carrier's field-level detail.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	// Details holds the carrier's structured error payload, field -> message
	Details map[string]string
	// cause is the underlying transport error, if any
	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("carrier: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("carrier: %s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying transport error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Retryable reports whether the client may retry after backoff.
// Authentication failures are handled separately via one token refresh.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindRateLimitExceeded, KindServiceUnavailable, KindNetwork:
		return true
	default:
		return false
	}
}

// TokenExpired reports whether the failure calls for a token refresh.
func (e *Error) TokenExpired() bool {
	return e.Kind == KindAuthenticationFailed
}

// ClassifyStatus builds a classified error from an HTTP response status.
func ClassifyStatus(statusCode int, message string, details map[string]string) *Error {
	kind := KindUnknown
	switch {
	case statusCode == http.StatusUnauthorized:
		kind = KindAuthenticationFailed
	case statusCode == http.StatusTooManyRequests:
		kind = KindRateLimitExceeded
	case statusCode >= 500:
		kind = KindServiceUnavailable
	case statusCode >= 400:
		kind = KindValidation
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &Error{Kind: kind, StatusCode: statusCode, Message: message, Details: details}
}

// ClassifyTransport wraps a transport-level failure. Context cancellation
// and deadline expiry count as network errors so the retry budget, not the
// classifier, decides what surfaces.
func ClassifyTransport(err error) *Error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	kind := KindUnknown
	var netErr net.Error
	switch {
	case errors.As(err, &netErr), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = KindNetwork
	}
	return &Error{Kind: kind, Message: err.Error(), cause: err}
}
