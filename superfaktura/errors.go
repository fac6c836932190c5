package superfaktura

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned for any 404 response, regardless of body content.
var ErrNotFound = errors.New("requested resource was not found")

// HTTPError represents a non-2xx, non-404 response from the SuperFaktura API.
type HTTPError struct {
	StatusCode int
	Body       map[string]any
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if msg, ok := e.Body["message"].(string); ok && msg != "" {
		return fmt.Sprintf("superfaktura: HTTP %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("superfaktura: HTTP %d returned by API", e.StatusCode)
}

// IsUnauthorized reports whether the error indicates an authentication failure.
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// APIError represents a 2xx response whose body carries a positive in-body
// error code. The API signals application failures this way instead of using
// HTTP status codes.
type APIError struct {
	StatusCode int
	Body       map[string]any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("superfaktura: API returned an error response (status %d)", e.StatusCode)
}

// ValidationError is an APIError carrying the API's field-level messages.
type ValidationError struct {
	APIError
	Details []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("superfaktura: API rejected the request: %s", strings.Join(e.Details, "; "))
}

// SchemaError reports a local shape violation: either untrusted input that
// does not match a domain schema, or a decoded API record that does not match
// the expected wire shape.
type SchemaError struct {
	Label  string
	Fields []string // "path: message" entries, one per violating field
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("superfaktura: %s failed validation: %s", e.Label, strings.Join(e.Fields, "; "))
}

// TimeoutError is returned when a request exceeds the configured timeout.
// It is distinct from other network failures so callers can tell the two
// apart.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("superfaktura: request to %s timed out after %s", e.URL, e.Timeout)
}
