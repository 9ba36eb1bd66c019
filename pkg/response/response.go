// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/federation-analytics/internal/analytics"
	"github.com/maxviazov/federation-analytics/internal/export"
	"github.com/maxviazov/federation-analytics/internal/repository"
	"github.com/maxviazov/federation-analytics/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Section   string `json:"section,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Store details stay in the logs; clients only learn which section failed.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	var pe *analytics.InvalidPeriodError
	if errors.As(err, &pe) {
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_period", Message: pe.Error()}
	}
	var fe *export.UnsupportedFormatError
	if errors.As(err, &fe) {
		return http.StatusBadRequest, ErrorPayload{Error: "unsupported_format", Message: fe.Error()}
	}

	unavailable := ErrorPayload{Error: "report_unavailable", Message: "report could not be generated, try again later"}
	var ae *service.AggregationError
	switch {
	case errors.As(err, &ae):
		unavailable.Section = string(ae.Section)
		return http.StatusServiceUnavailable, unavailable
	case errors.Is(err, repository.ErrFetch),
		errors.Is(err, repository.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, unavailable
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
// The request id set by the middleware is echoed back when present.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	payload.RequestID = c.GetString(RequestIDKey)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"
