// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// ErrorResponse is the error envelope for every failed API call.
// Clients read Error; Code and Field are for programmatic handling.
type ErrorResponse struct {
	Success bool `json:"success"`

	// Error is a human-readable message, safe to show to the submitter.
	Error string `json:"error"`

	// Code is a machine-readable error code (e.g., "EMPTY_CONTENT").
	Code string `json:"code"`

	// Field names the offending request field, when there is one.
	Field string `json:"field,omitempty"`

	TraceID string `json:"traceId,omitempty"`
}

// Error codes for machine-readable error identification. The three
// content codes mirror domain.ValidationReason values.
const (
	ErrorCodeMissingField = "MISSING_FIELD"
	ErrorCodeEmptyContent = "EMPTY_CONTENT"
	ErrorCodeTooLong      = "TOO_LONG"

	// ErrorCodeBadRequest indicates the request was malformed.
	ErrorCodeBadRequest = "BAD_REQUEST"

	// ErrorCodePayloadTooLarge indicates the body exceeded the size limit.
	ErrorCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"

	// ErrorCodeMethodNotAllowed indicates the route exists under another method.
	ErrorCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

	// ErrorCodeNotFound indicates the requested route or resource was not found.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeUnavailable indicates a dependency is unavailable.
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal = "INTERNAL_ERROR"
)

// Client-facing messages that do not come from a domain error.
const (
	MessageInternal         = "Internal server error. Please try again later."
	MessageMethodNotAllowed = "Method not allowed"
	MessageNotFound         = "Not found"
	MessageInvalidJSON      = "Invalid JSON in request body"
	MessageBodyTooLarge     = "Request body too large"
)

func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: message, Code: code}
}

// WithField names the request field the error is about.
func (e *ErrorResponse) WithField(field string) *ErrorResponse {
	e.Field = field
	return e
}

func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

var statusByCode = map[string]int{
	ErrorCodeMissingField:     http.StatusBadRequest,
	ErrorCodeEmptyContent:     http.StatusBadRequest,
	ErrorCodeTooLong:          http.StatusBadRequest,
	ErrorCodeBadRequest:       http.StatusBadRequest,
	ErrorCodePayloadTooLarge:  http.StatusRequestEntityTooLarge,
	ErrorCodeMethodNotAllowed: http.StatusMethodNotAllowed,
	ErrorCodeNotFound:         http.StatusNotFound,
	ErrorCodeUnavailable:      http.StatusServiceUnavailable,
}

// HTTPStatusFromCode is the status an error code is sent with. Unknown
// codes are 500.
func HTTPStatusFromCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}

// GetTraceID returns the OpenTelemetry trace ID of the request, or "".
func GetTraceID(c *gin.Context) string {
	span := trace.SpanFromContext(c.Request.Context())
	if !span.SpanContext().HasTraceID() {
		return ""
	}

	return span.SpanContext().TraceID().String()
}
