// Package auth implements the identity resolution gate: it derives the acting
// user exclusively from server-verifiable session state carried in an
// HttpOnly cookie, and re-issues that state on every successful verification
// so an active session does not silently expire mid-use.
//
// Sessions are HS256-signed JWTs. The signature proves the cookie was minted
// by a holder of the shared secret; no client-asserted identifier (header,
// body, query) is ever consulted. Any verification failure (absent cookie,
// expired token, bad signature, wrong issuer) is reported through the same
// error path, so callers cannot distinguish the causes and must treat them
// all as "unauthenticated".
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// issuer binds tokens to this service so sessions minted for other apps
// sharing a secret by accident are rejected.
const issuer = "apptrack"

// ErrNoSession is the uniform error for every way a session can fail to
// resolve. Callers must not branch on the underlying cause.
var ErrNoSession = errors.New("auth: no valid session")

// SessionService mints, verifies, and re-issues session cookies.
type SessionService struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
}

// NewSessionService constructs a SessionService. The secret must be at least
// 32 bytes of random data; ttl is the sliding session lifetime.
func NewSessionService(secret string, ttl time.Duration, cookieName string, secure bool) (*SessionService, error) {
	if len(secret) < 32 {
		return nil, errors.New("auth: session secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: session TTL must be positive")
	}
	if cookieName == "" {
		return nil, errors.New("auth: session cookie name must not be empty")
	}
	return &SessionService{
		secret:     []byte(secret),
		ttl:        ttl,
		cookieName: cookieName,
		secure:     secure,
	}, nil
}

// CookieName returns the name of the session cookie this service reads and
// writes.
func (s *SessionService) CookieName() string { return s.cookieName }

// Issue mints a signed session token for userID with a fresh expiry.
func (s *SessionService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("auth: cannot issue session for empty user id")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session token: %w", err)
	}
	return signed, nil
}

// Verify parses and verifies a session token, returning the user identity it
// was minted for. Every failure mode collapses into ErrNoSession.
func (s *SessionService) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", ErrNoSession
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrNoSession
	}
	return claims.Subject, nil
}

// Resolve extracts and verifies the session cookie from r, returning the
// resolved identity. Missing cookie, tampered token, and expired session all
// yield ErrNoSession.
func (s *SessionService) Resolve(r *http.Request) (string, error) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return "", ErrNoSession
	}
	return s.Verify(cookie.Value)
}

// Cookie wraps a signed token in the HttpOnly session cookie. SameSite=Lax
// keeps the cookie off cross-site POSTs while still allowing top-level
// navigation.
func (s *SessionService) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie returns an expired cookie that removes the session from the
// client (sign-out).
func (s *SessionService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
