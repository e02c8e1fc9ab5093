// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/fhsinchy/inspire/internal/domain"
	"github.com/fhsinchy/inspire/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "UPSTREAM_UNAVAILABLE").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details carries structured context, e.g. the offending upstream field.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	// ErrorCodeUpstreamUnavailable indicates the quote provider could not be reached.
	ErrorCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"

	// ErrorCodeUpstreamError indicates the quote provider answered with a non-2xx status.
	ErrorCodeUpstreamError = "UPSTREAM_ERROR"

	// ErrorCodeMalformedResponse indicates the quote provider's body was unusable.
	ErrorCodeMalformedResponse = "MALFORMED_RESPONSE"

	// ErrorCodeNotFound indicates the route does not exist.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeMethodNotAllowed indicates the route exists for another method.
	ErrorCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal = "INTERNAL_ERROR"
)

// internalMessage is shown for errors that are not part of the upstream taxonomy.
const internalMessage = "an internal error occurred"

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes. Every fetch
// failure is a server fault, so all upstream codes answer 500.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps a domain error to an HTTP status and error envelope.
// Unknown errors get a generic message so internals do not leak.
func MapDomainError(err error) (int, *ErrorResponse) {
	var resp *ErrorResponse

	switch {
	case domain.IsUpstreamUnavailable(err):
		resp = NewErrorResponse(ErrorCodeUpstreamUnavailable, err.Error())

	case domain.IsUpstreamStatus(err):
		resp = NewErrorResponse(ErrorCodeUpstreamError, err.Error())

		var statusErr *domain.UpstreamStatusError
		if errors.As(err, &statusErr) {
			resp.Error.Details = map[string]string{"upstreamStatus": strconv.Itoa(statusErr.StatusCode)}
		}

	case domain.IsMalformedResponse(err):
		resp = NewErrorResponse(ErrorCodeMalformedResponse, err.Error())

		var malformed *domain.MalformedResponseError
		if errors.As(err, &malformed) && malformed.Field != "" {
			resp.Error.Details = map[string]string{malformed.Field: malformed.Reason}
		}

	default:
		resp = NewErrorResponse(ErrorCodeInternal, internalMessage)
	}

	return HTTPStatusFromCode(resp.Error.Code), resp
}

// GetTraceID returns the active trace ID for the request, or "".
func GetTraceID(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}

// HandleError logs err and writes the mapped error envelope. It is the single
// exit for failed requests so every failure carries the trace ID.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
		slog.String("code", resp.Error.Code),
		slog.Int("status", status),
		slog.Any("error", err),
		slog.String("trace_id", resp.TraceID),
	)

	c.AbortWithStatusJSON(status, resp)
}

// AbortWithCode aborts the chain with a bare error code, used by middleware
// and the router's fallback handlers.
func AbortWithCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}
