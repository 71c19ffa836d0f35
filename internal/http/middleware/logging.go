// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides request correlation, structured access logging, and
// panic recovery:
//
//   - RequestID() ensures every request carries a stable correlation ID,
//     propagated via the X-Request-ID header and the Gin context.
//   - Logger() emits one structured zerolog line per request with method,
//     route, status, latency, and sizes, and attaches a request-scoped
//     logger for handlers. Session cookies and Authorization material are
//     never logged.
//   - Recovery() converts panics into JSON 500 responses, keeping the
//     correlation ID and logging the stack.
//   - LoggerFrom() retrieves the request-scoped logger inside handlers.
//
// Install in the order RequestID → Logger → Recovery so panics and errors are
// logged with their correlation ID.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// requestIDKey is the Gin context key under which the request ID is stored.
	requestIDKey = "requestID"
	// loggerKey is the Gin context key for the request-scoped logger.
	loggerKey = "logger"
	// requestIDHeader is the HTTP header used to propagate the correlation ID.
	requestIDHeader = "X-Request-ID"
)

// RequestID attaches (or propagates) a correlation identifier per request.
// An incoming X-Request-ID is reused; otherwise a new UUIDv4 is generated.
// The ID is echoed on the response and stored in the Gin context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// RequestIDFrom returns the correlation ID for the current request, or "".
func RequestIDFrom(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Logger writes a structured access log line per request and stores a
// request-scoped logger in the Gin context. The log level follows the
// outcome: error for 5xx, warn for 4xx, info otherwise.
//
// The session cookie is deliberately absent from the log fields; only its
// presence would be derivable from the 401/200 outcome. Never add Cookie or
// Authorization header values here.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := RequestIDFrom(c)

		lg := log.With().
			Str("request_id", rid).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Set(loggerKey, lg)

		c.Next()

		status := c.Writer.Status()
		evt := lg.Info()
		switch {
		case status >= http.StatusInternalServerError:
			evt = lg.Error()
		case status >= http.StatusBadRequest:
			evt = lg.Warn()
		}
		if uid, ok := UserID(c); ok {
			evt = evt.Str("user_id", uid)
		}
		evt.
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Int("bytes_out", c.Writer.Size()).
			Msg("http request")
	}
}

// LoggerFrom returns the request-scoped logger stored by Logger(), falling
// back to the global logger when absent (e.g., in tests without middleware).
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(zerolog.Logger); ok {
			return &lg
		}
	}
	return &log.Logger
}

// Recovery converts panics into a JSON 500 response carrying the correlation
// ID, and logs the panic value with a stack trace.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				LoggerFrom(c).Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"request_id": RequestIDFrom(c),
					"code":       "internal_error",
					"message":    "internal error",
				})
			}
		}()
		c.Next()
	}
}
