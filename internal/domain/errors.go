package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested media item does not exist
	ErrItemNotFound = errors.New("media item not found")

	// ErrServerOffline indicates the media server is unreachable
	ErrServerOffline = errors.New("media server is unreachable")

	// ErrAuthFailed indicates authentication failed
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrNotAuthenticated indicates an operation was attempted before a
	// session was configured
	ErrNotAuthenticated = errors.New("no session configured")
)

// ErrorKind categorizes API failures
type ErrorKind int

const (
	// KindTransport covers connection refused, timeouts and DNS failures.
	// Always retryable by the caller.
	KindTransport ErrorKind = iota

	// KindServer covers non-2xx HTTP responses
	KindServer

	// KindDeserialize covers malformed or unexpected response bodies
	KindDeserialize

	// KindUnauthenticated covers operations attempted with no session
	KindUnauthenticated
)

// String returns the kind label used in log output
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindDeserialize:
		return "deserialize"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// APIError is a categorized failure returned by API client operations.
// Status is only set for KindServer.
type APIError struct {
	Kind   ErrorKind
	Op     string // Logical operation name, e.g. "GetLibraries"
	Status int    // HTTP status code for server errors
	Err    error  // Underlying cause, may be nil
}

func (e *APIError) Error() string {
	switch {
	case e.Kind == KindServer:
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// IsRetryable reports whether the caller may reasonably retry the operation
func (e *APIError) IsRetryable() bool {
	return e.Kind == KindTransport
}

// ErrorKindOf extracts the kind from an error chain, returning ok=false for
// errors that did not originate from an API client operation
func ErrorKindOf(err error) (ErrorKind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}
