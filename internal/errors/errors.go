package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Error codes
const (
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInsufficientData   = "INSUFFICIENT_DATA"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeRequestTimeout     = "REQUEST_TIMEOUT"
	CodeInternalServer     = "INTERNAL_SERVER_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Predefined error types for common scenarios
var (
	ErrNotFound           = New(http.StatusNotFound, CodeNotFound, "Resource not found")
	ErrRateLimitExceeded  = New(http.StatusTooManyRequests, CodeRateLimitExceeded, "Rate limit exceeded")
	ErrInternalServer     = New(http.StatusInternalServerError, CodeInternalServer, "Internal server error")
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, CodeServiceUnavailable, "Service temporarily unavailable")
)

// SegmentDetails describes a change-point segment that cannot be summarized
type SegmentDetails struct {
	Segment   string `json:"segment"`
	Length    int    `json:"length"`
	MinLength int    `json:"min_length"`
}

// InsufficientSegmentData creates the 422 error returned when a segment is too
// short for summary statistics.
func InsufficientSegmentData(segment string, length, minLength int) *APIError {
	return NewWithDetails(
		http.StatusUnprocessableEntity,
		CodeInsufficientData,
		fmt.Sprintf("The %s segment has %d observations; summary statistics need at least %d",
			segment, length, minLength),
		SegmentDetails{Segment: segment, Length: length, MinLength: minLength},
	)
}
