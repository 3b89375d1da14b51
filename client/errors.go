package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid client configuration")
	// ErrConnection indicates the service could not be reached or answered
	// with an unexpected status
	ErrConnection = errors.New("connection failed")
	// ErrUnauthorized indicates authentication failure
	ErrUnauthorized = errors.New("unauthorized: invalid API key")
	// ErrForbidden indicates the key is valid but not allowed to do this.
	// It matches ErrUnauthorized with errors.Is.
	ErrForbidden = fmt.Errorf("forbidden: unauthorized operation: %w", ErrUnauthorized)
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates the service rejected the request payload
	ErrValidation = errors.New("validation failed")
)

// APIError represents a non-2xx answer from a service
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
	Body       string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// ConnectionError is returned when no HTTP response was received.
type ConnectionError struct {
	Host string
	Port int
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect at %s:%d: %v", e.Host, e.Port, e.Err)
}

// Unwrap exposes both ErrConnection and the transport error, so callers can
// also test for context.DeadlineExceeded and friends.
func (e *ConnectionError) Unwrap() []error {
	return []error{ErrConnection, e.Err}
}

// FieldError is one entry of a validation failure body.
type FieldError struct {
	Property       string `json:"propertyName"`
	Message        string `json:"errorMessage"`
	AttemptedValue any    `json:"attemptedValue,omitempty"`
	Severity       string `json:"severity,omitempty"`
}

// ValidationError is returned for 400 and 422 answers.
type ValidationError struct {
	StatusCode int
	Path       string
	Message    string
	Fields     []FieldError
	Body       string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Property == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Property+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Path, e.Message, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Field returns the first error reported for property.
func (e *ValidationError) Field(property string) (FieldError, bool) {
	for _, f := range e.Fields {
		if strings.EqualFold(f.Property, property) {
			return f, true
		}
	}
	return FieldError{}, false
}

// newValidationError understands both body shapes the services produce: a
// list of field errors, or an object with a message.
func newValidationError(status int, path string, body []byte) *ValidationError {
	verr := &ValidationError{
		StatusCode: status,
		Path:       path,
		Message:    "validation failed",
		Body:       string(body),
	}

	var fields []FieldError
	if err := json.Unmarshal(body, &fields); err == nil {
		verr.Fields = fields
		return verr
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &obj); err == nil && obj.Message != "" {
		verr.Message = obj.Message
	}
	return verr
}

// IsNotFound reports whether err is a 404 from a service.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether err is a 401 or 403 from a service.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsConnection reports whether the service could not be reached or answered
// with an unexpected status.
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsValidation reports whether the service rejected the payload.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// ErrorForStatus maps a non-2xx response to the error taxonomy. Clients of
// other upstream protocols reuse it for their HTTP layer.
func ErrorForStatus(method, path string, status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return &APIError{StatusCode: status, Method: method, Path: path, Message: "invalid API key", Body: string(body), Err: ErrUnauthorized}
	case http.StatusForbidden:
		return &APIError{StatusCode: status, Method: method, Path: path, Message: "unauthorized operation", Body: string(body), Err: ErrForbidden}
	case http.StatusNotFound:
		return &APIError{StatusCode: status, Method: method, Path: path, Message: "resource not found: " + path, Body: string(body), Err: ErrNotFound}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return newValidationError(status, path, body)
	default:
		return &APIError{StatusCode: status, Method: method, Path: path, Message: bodyMessage(body), Body: string(body), Err: ErrConnection}
	}
}

func bodyMessage(body []byte) string {
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
