package meteolux

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an APIError.
type ErrorKind int

const (
	// KindTransport marks network-level failures: DNS, connect, timeout.
	KindTransport ErrorKind = iota + 1
	// KindNotFound marks 404 responses.
	KindNotFound
	// KindHTTP marks any other non-2xx response.
	KindHTTP
	// KindSchemaValidation marks 2xx responses whose body does not match
	// the expected schema.
	KindSchemaValidation
	// KindMalformedResponse marks 2xx responses whose body is not valid
	// JSON.
	KindMalformedResponse
)

// String returns the kind's name for logs.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindNotFound:
		return "not_found"
	case KindHTTP:
		return "http"
	case KindSchemaValidation:
		return "schema_validation"
	case KindMalformedResponse:
		return "malformed_response"
	}
	return "unknown"
}

// APIError is the one error type every call surfaces. Which fields are
// populated depends on Kind: StatusCode and Detail for HTTP-level failures,
// Err for wrapped causes (the transport error, the JSON decode error, or
// schema.Issues for KindSchemaValidation, reachable through errors.As).
type APIError struct {
	Kind       ErrorKind
	StatusCode int    // HTTP status; 0 when no response was received
	Detail     string // raw response body text, where applicable
	Method     string
	URL        string
	Err        error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("meteolux: %s %s: transport: %v", e.Method, e.URL, e.Err)
	case KindNotFound:
		return fmt.Sprintf("meteolux: %s %s: not found: %s", e.Method, e.URL, e.Detail)
	case KindHTTP:
		return fmt.Sprintf("meteolux: %s %s: http %d: %s", e.Method, e.URL, e.StatusCode, e.Detail)
	case KindSchemaValidation:
		return fmt.Sprintf("meteolux: %s %s: response validation: %v", e.Method, e.URL, e.Err)
	case KindMalformedResponse:
		return fmt.Sprintf("meteolux: %s %s: malformed response: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("meteolux: %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap exposes the wrapped cause to errors.Is and errors.As.
func (e *APIError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the service. Callers use it
// for "does not exist" semantics and let other kinds propagate.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == KindNotFound
}
