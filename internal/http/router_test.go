package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avasquez/go-apptrack-backend/internal/auth"
	"github.com/avasquez/go-apptrack-backend/internal/config"
	"github.com/avasquez/go-apptrack-backend/internal/domain"
	"github.com/avasquez/go-apptrack-backend/internal/policy"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:routerdb_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Application{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := db.Use(policy.OwnerPolicy{}); err != nil {
		t.Fatalf("install policy: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath: "/api/v1",
		RateRPS:     1000, // keep the limiter out of the way
		RateBurst:   1000,
		Security:    config.SecurityConfig{EnableHSTS: false, HSTSMaxAge: 0},
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newTestSessions(t *testing.T, ttl time.Duration) *auth.SessionService {
	t.Helper()
	s, err := auth.NewSessionService("0123456789abcdef0123456789abcdef", ttl, "apptrack_session", false)
	if err != nil {
		t.Fatalf("NewSessionService: %v", err)
	}
	return s
}

func newStack(t *testing.T, ttl time.Duration) (*gin.Engine, *gorm.DB, *auth.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)
	sessions := newTestSessions(t, ttl)
	RegisterRoutes(r, db, sessions, testConfig())
	return r, db, sessions
}

func asUser(t *testing.T, sessions *auth.SessionService, uid string) func(*http.Request) {
	t.Helper()
	token, err := sessions.Issue(uid)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: sessions.CookieName(), Value: token})
	}
}

func send(r *gin.Engine, method, path, body string, arms ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, arm := range arms {
		arm(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_Health_Metrics_Fallbacks(t *testing.T) {
	r, _, _ := newStack(t, time.Hour)

	// /health works without a session
	w := send(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}

	// /metrics is wired
	w = send(r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute → 404
	w = send(r, http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope = %d, want 404", w.Code)
	}

	// NoMethod → 405 (POST /health)
	w = send(r, http.MethodPost, "/health", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health = %d, want 405", w.Code)
	}
}

func TestRegisterRoutes_SecurityHeadersOnResponses(t *testing.T) {
	r, _, _ := newStack(t, time.Hour)
	w := send(r, http.MethodGet, "/health", "")
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
	if got := w.Header().Get("Cache-Control"); !strings.Contains(got, "no-store") {
		t.Fatalf("Cache-Control = %q", got)
	}
}

func TestAPI_WithoutSession_Uniform401_NoWrite(t *testing.T) {
	r, db, sessions := newStack(t, 10*time.Millisecond)

	expired, err := sessions.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	createBody := `{"company_name":"Acme","position_title":"Engineer","application_date":"2026-01-10"}`
	arms := map[string]func(*http.Request){
		"absent": func(*http.Request) {},
		"expired": func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: sessions.CookieName(), Value: expired})
		},
		"tampered": func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: sessions.CookieName(), Value: expired + "x"})
		},
	}

	var bodies []string
	for name, arm := range arms {
		t.Run(name, func(t *testing.T) {
			w := send(r, http.MethodPost, "/api/v1/applications", createBody, arm)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("create = %d, want 401", w.Code)
			}
			bodies = append(bodies, w.Body.String())
		})
	}
	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Fatalf("401 bodies differ: %q vs %q", bodies[0], bodies[i])
		}
	}

	// No row reached storage.
	var n int64
	if err := db.WithContext(policy.WithIdentity(context.Background(), "alice")).
		Model(&domain.Application{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("unauthenticated create persisted %d rows", n)
	}
}

func TestAPI_FullLifecycleThroughStack(t *testing.T) {
	r, _, sessions := newStack(t, time.Hour)
	alice := asUser(t, sessions, "alice")
	bob := asUser(t, sessions, "bob")

	// Create
	w := send(r, http.MethodPost, "/api/v1/applications",
		`{"company_name":"Acme","position_title":"Engineer","application_date":"2026-01-10","notes":"warm intro"}`, alice)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", w.Code, w.Body.String())
	}
	var created domain.Application
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// A fresh cookie rides on the authenticated response (sliding session).
	refreshed := false
	for _, c := range w.Result().Cookies() {
		if c.Name == sessions.CookieName() && c.Value != "" {
			refreshed = true
		}
	}
	if !refreshed {
		t.Fatal("no refreshed session cookie on authenticated response")
	}

	// Bob cannot reach it
	if w := send(r, http.MethodGet, "/api/v1/applications/"+created.ID, "", bob); w.Code != http.StatusNotFound {
		t.Fatalf("bob get = %d, want 404", w.Code)
	}

	// Alice updates, then deletes
	w = send(r, http.MethodPatch, "/api/v1/applications/"+created.ID, `{"status":"interviewing"}`, alice)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", w.Code, w.Body.String())
	}
	w = send(r, http.MethodDelete, "/api/v1/applications/"+created.ID, "", alice)
	if w.Code != http.StatusOK {
		t.Fatalf("delete = %d: %s", w.Code, w.Body.String())
	}
	if w := send(r, http.MethodGet, "/api/v1/applications/"+created.ID, "", alice); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", w.Code)
	}

	// Session endpoints
	w = send(r, http.MethodGet, "/api/v1/session", "", alice)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"alice"`) {
		t.Fatalf("session = %d: %s", w.Code, w.Body.String())
	}
	w = send(r, http.MethodDelete, "/api/v1/session", "", alice)
	if w.Code != http.StatusNoContent {
		t.Fatalf("sign out = %d", w.Code)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limitBody(8))
	r.POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := send(r, http.MethodPost, "/echo", "small")
	if w.Code != http.StatusOK {
		t.Fatalf("small body = %d", w.Code)
	}
	w = send(r, http.MethodPost, "/echo", strings.Repeat("x", 64))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized body = %d, want 413", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tc := range []struct {
		prefix string
		path   string
	}{
		{"", "/ping"},
		{"/", "/ping"},
		{"/api/v1", "/api/v1/ping"},
	} {
		r := gin.New()
		g := groupWithPrefix(r, tc.prefix)
		g.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
		w := send(r, http.MethodGet, tc.path, "")
		if w.Code != http.StatusOK {
			t.Fatalf("prefix %q: GET %s = %d", tc.prefix, tc.path, w.Code)
		}
	}
}

func Test_applicationRepoShim_Proxies(t *testing.T) {
	db := newTestDB(t)
	ctx := policy.WithIdentity(context.Background(), "alice")
	shim := applicationRepoShim{}

	created, err := shim.CreateApplication(ctx, db, "alice", domain.Application{
		CompanyName:     "Acme",
		PositionTitle:   "Engineer",
		Status:          domain.StatusApplied,
		ApplicationDate: "2026-01-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if got, err := shim.GetApplication(ctx, db, created.ID, "alice"); err != nil || got.CompanyName != "Acme" {
		t.Fatalf("get: %+v %v", got, err)
	}
	if list, err := shim.ListApplications(ctx, db, "alice"); err != nil || len(list) != 1 {
		t.Fatalf("list: %d %v", len(list), err)
	}

	pos := "Staff Engineer"
	if got, err := shim.UpdateApplication(ctx, db, created.ID, "alice", domain.ApplicationUpdate{PositionTitle: &pos}); err != nil || got.PositionTitle != pos {
		t.Fatalf("update: %+v %v", got, err)
	}
	if err := shim.DeleteApplication(ctx, db, created.ID, "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
