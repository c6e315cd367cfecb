package api

import (
	"fmt"
	"net/http"
)

// ErrorType is the category label carried in the error body. These are the
// three types downstream OpenAI clients understand.
type ErrorType string

const (
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error"
	ErrorTypeAuthentication ErrorType = "authentication_error"
	ErrorTypeAPI            ErrorType = "api_error"
)

// APIError is the structured error used on every failure path. Code carries
// the HTTP status the gateway responds with, which for backend failures is
// the backend's own status passed through.
type APIError struct {
	Message string    `json:"message"`
	Type    ErrorType `json:"type"`
	Code    int       `json:"code"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Type, e.Code, e.Message)
}

// ErrorResponse wraps an APIError as the top-level JSON error body.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewInvalidRequestError creates an error for malformed requests
// (missing messages, no user message, bad parameters).
func NewInvalidRequestError(message string) *APIError {
	return &APIError{
		Message: message,
		Type:    ErrorTypeInvalidRequest,
		Code:    http.StatusBadRequest,
	}
}

// NewMissingCredentialError creates the error returned when the inbound
// request carries no Authorization header.
func NewMissingCredentialError() *APIError {
	return &APIError{
		Message: "Authorization header is required",
		Type:    ErrorTypeAuthentication,
		Code:    http.StatusUnauthorized,
	}
}

// NewAuthenticationError creates an error for authentication failures
// reported by the backend. The backend's status code is passed through.
func NewAuthenticationError(status int, message string) *APIError {
	return &APIError{
		Message: message,
		Type:    ErrorTypeAuthentication,
		Code:    status,
	}
}

// NewUpstreamAPIError creates an error for a non-auth HTTP error status
// from the backend, preserving the backend's status code.
func NewUpstreamAPIError(status int, message string) *APIError {
	return &APIError{
		Message: message,
		Type:    ErrorTypeAPI,
		Code:    status,
	}
}

// NewUpstreamUnavailableError creates an error for transport-level backend
// failures (connection refused, DNS, timeout).
func NewUpstreamUnavailableError(message string) *APIError {
	return &APIError{
		Message: message,
		Type:    ErrorTypeAPI,
		Code:    http.StatusInternalServerError,
	}
}

// NewEmptyUpstreamReplyError creates an error for an absent backend payload.
func NewEmptyUpstreamReplyError() *APIError {
	return &APIError{
		Message: "backend returned an empty reply",
		Type:    ErrorTypeAPI,
		Code:    http.StatusInternalServerError,
	}
}

// NewEmptyUpstreamContentError creates an error for a backend payload that
// yields no usable text content.
func NewEmptyUpstreamContentError() *APIError {
	return &APIError{
		Message: "backend reply contained no content",
		Type:    ErrorTypeAPI,
		Code:    http.StatusInternalServerError,
	}
}

// NewInternalError creates an error for uncaught internal failures.
func NewInternalError(message string) *APIError {
	return &APIError{
		Message: message,
		Type:    ErrorTypeAPI,
		Code:    http.StatusInternalServerError,
	}
}

// AsAPIError converts any error into an *APIError, wrapping unknown errors
// as internal errors so raw transport failures never reach the caller.
func AsAPIError(err error) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return NewInternalError(err.Error())
}
