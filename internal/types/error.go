package types

import (
	"fmt"
	"net/http"
)

// APIError is an application error carrying the HTTP status it should be answered with
type APIError struct {
	StatusCode int                    `json:"status"`
	Message    string                 `json:"message"`
	Type       string                 `json:"type,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.StatusCode, e.Message, e.Type)
}

// NewAPIError creates an APIError with the given status and message
func NewAPIError(status int, message, errorType string) *APIError {
	return &APIError{StatusCode: status, Message: message, Type: errorType}
}

// NotFound creates a 404 APIError with a fixed message such as "User not found"
func NotFound(message string) *APIError {
	return NewAPIError(http.StatusNotFound, message, "not_found")
}

// BadRequest creates a 400 APIError
func BadRequest(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, message, "validation")
}

// WithPayload attaches extra fields rendered next to the message
func (e *APIError) WithPayload(payload map[string]interface{}) *APIError {
	e.Payload = payload
	return e
}
