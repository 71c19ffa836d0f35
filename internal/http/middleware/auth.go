// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the identity gate: every protected route passes
// through RequireIdentity before any validation or storage access. The gate
// resolves the acting user solely from the session cookie verified by
// auth.SessionService, never from a client-supplied identifier, and
// re-issues the cookie with a fresh expiry on every successful request
// (sliding expiration).
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avasquez/go-apptrack-backend/internal/auth"
	"github.com/avasquez/go-apptrack-backend/internal/policy"
)

// userIDKey is the Gin context key under which the resolved identity is
// stored for handlers.
const userIDKey = "userID"

// RequireIdentity returns a Gin middleware that resolves the session cookie
// into a verified identity. On success it stores the identity in the Gin
// context and in the request context (via policy.WithIdentity, so the
// row-level owner policy sees the same identity), and slides the session
// forward by re-issuing the cookie. On any failure (absent, expired, or
// tampered session) it aborts with a uniform 401 envelope; the client cannot
// tell the causes apart.
func RequireIdentity(sessions *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := sessions.Resolve(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "unauthenticated",
				"message": "valid session required",
			})
			return
		}

		// Sliding expiration: a valid session is refreshed on every use.
		if token, err := sessions.Issue(userID); err == nil {
			http.SetCookie(c.Writer, sessions.Cookie(token))
		}

		c.Set(userIDKey, userID)
		c.Request = c.Request.WithContext(policy.WithIdentity(c.Request.Context(), userID))
		c.Next()
	}
}

// UserID retrieves the verified identity stored by RequireIdentity. It
// returns ("", false) when the request did not pass the gate.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
