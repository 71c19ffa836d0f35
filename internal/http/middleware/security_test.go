package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func securityRouter(opt SecurityOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders(opt))
	r.GET("/h", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	r := securityRouter(SecurityOptions{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/h", nil))

	h := w.Header()
	if h.Get("X-Content-Type-Options") != "nosniff" ||
		h.Get("X-Frame-Options") != "DENY" ||
		h.Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("baseline headers missing: %+v", h)
	}
	if h.Get("Cache-Control") != "" {
		t.Fatalf("Cache-Control set without NoStore: %q", h.Get("Cache-Control"))
	}
	if h.Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS emitted while disabled")
	}
}

func TestSecurityHeaders_NoStore(t *testing.T) {
	r := securityRouter(SecurityOptions{NoStore: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/h", nil))

	if w.Header().Get("Cache-Control") != "no-store" || w.Header().Get("Pragma") != "no-cache" {
		t.Fatalf("no-store directives missing: %+v", w.Header())
	}
}

func TestSecurityHeaders_HSTS_OnlyOverHTTPS(t *testing.T) {
	r := securityRouter(SecurityOptions{EnableHSTS: true, HSTSMaxAge: 24 * time.Hour})

	// Plain HTTP: no HSTS.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/h", nil))
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("HSTS emitted on plain HTTP")
	}

	// TLS connection.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/h", nil)
	req.TLS = &tls.ConnectionState{}
	r.ServeHTTP(w, req)
	got := w.Header().Get("Strict-Transport-Security")
	if !strings.Contains(got, "max-age=86400") || !strings.Contains(got, "includeSubDomains") {
		t.Fatalf("HSTS header = %q", got)
	}

	// Proxy-terminated TLS.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/h", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	r.ServeHTTP(w, req)
	if w.Header().Get("Strict-Transport-Security") == "" {
		t.Fatal("HSTS missing behind X-Forwarded-Proto: https")
	}
}

func TestSecurityHeaders_HSTSMaxAgeDefault(t *testing.T) {
	r := securityRouter(SecurityOptions{EnableHSTS: true}) // zero max-age -> 180d default

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/h", nil)
	req.TLS = &tls.ConnectionState{}
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Strict-Transport-Security"); !strings.Contains(got, "max-age=15552000") {
		t.Fatalf("default HSTS max-age wrong: %q", got)
	}
}
