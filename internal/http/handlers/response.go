// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints: a structured error envelope with a stable machine-readable code,
// a variant carrying per-field validation detail, and small helpers for the
// success cases. Every failure mode a client is expected to handle
// (unauthenticated, validation, not-found) is a first-class JSON outcome, not
// exceptional control flow.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "application not found"
//	}
//
// Example validation response:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "…",
//	  "code": "validation_failed",
//	  "message": "one or more fields are invalid",
//	  "fields": {"company_name": "is required"}
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avasquez/go-apptrack-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// RequestID correlates server logs and client errors.
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Code is a stable, machine-readable code (see errors.go constants).
	Code string `json:"code" example:"not_found"`
	// Message is human-readable and safe to show to users.
	Message string `json:"message" example:"application not found"`
	// Fields carries per-field validation messages when Code is
	// validation_failed; absent otherwise.
	Fields map[string]string `json:"fields,omitempty"`
}

// fail aborts the request with a structured error envelope. Server errors
// (>= 500) are logged with the request-scoped logger; their Message must
// already be opaque; raw storage error text never goes into the envelope.
func fail(c *gin.Context, status int, code, msg string) {
	failFields(c, status, code, msg, nil)
}

// failFields is fail with per-field validation detail attached.
func failFields(c *gin.Context, status int, code, msg string, fields map[string]string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
		Fields:    fields,
	}
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
