// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, structured logging, panic recovery, metrics,
// compression, CORS, security headers, rate limiting, and the identity gate.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate the correlation id
//  3. Logger: structured access logs (session material redacted)
//  4. Recovery: capture panics after the logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. Gzip, CORS, security headers
//
// The identity gate (RequireIdentity) is mounted on the API group only, so
// /health and /metrics remain reachable by probes and the scraper.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/avasquez/go-apptrack-backend/docs"
	"github.com/avasquez/go-apptrack-backend/internal/auth"
	"github.com/avasquez/go-apptrack-backend/internal/config"
	"github.com/avasquez/go-apptrack-backend/internal/domain"
	"github.com/avasquez/go-apptrack-backend/internal/http/handlers"
	"github.com/avasquez/go-apptrack-backend/internal/http/middleware"
	"github.com/avasquez/go-apptrack-backend/internal/repo"
	"github.com/avasquez/go-apptrack-backend/internal/services"
)

// applicationRepoShim adapts the repository free functions to the
// services.ApplicationRepo interface expected by the ApplicationService. This
// keeps services decoupled from the concrete repo package while reusing the
// existing functions.
type applicationRepoShim struct{}

func (applicationRepoShim) CreateApplication(ctx context.Context, db *gorm.DB, ownerID string, app domain.Application) (*domain.Application, error) {
	return repo.CreateApplication(ctx, db, ownerID, app)
}

func (applicationRepoShim) ListApplications(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.Application, error) {
	return repo.ListApplications(ctx, db, ownerID)
}

func (applicationRepoShim) GetApplication(ctx context.Context, db *gorm.DB, id, ownerID string) (*domain.Application, error) {
	return repo.GetApplication(ctx, db, id, ownerID)
}

func (applicationRepoShim) UpdateApplication(ctx context.Context, db *gorm.DB, id, ownerID string, upd domain.ApplicationUpdate) (*domain.Application, error) {
	return repo.UpdateApplication(ctx, db, id, ownerID, upd)
}

func (applicationRepoShim) DeleteApplication(ctx context.Context, db *gorm.DB, id, ownerID string) error {
	return repo.DeleteApplication(ctx, db, id, ownerID)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. All dependencies are injected: the DB handle (already carrying the
// owner policy), the session service, and configuration.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, sessions *auth.SessionService, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) Compression, CORS, security headers. CORS is only mounted when
	// origins are configured: the session cookie requires AllowCredentials,
	// which forbids a wildcard origin.
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "ETag", "Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
		NoStore:    true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs (optional)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	appSvc := services.NewApplicationService(db, applicationRepoShim{})
	h := handlers.New(appSvc, sessions)

	// Authenticated API: every route below passes the identity gate first.
	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(middleware.RequireIdentity(sessions))
	{
		// Applications
		api.POST("/applications", h.CreateApplication)
		api.GET("/applications", h.ListApplications)
		api.GET("/applications/:id", h.GetApplication)
		api.PATCH("/applications/:id", h.UpdateApplication)
		api.DELETE("/applications/:id", h.DeleteApplication)

		// Session
		api.GET("/session", h.CurrentSession)
		api.DELETE("/session", h.SignOut)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
