// Package httpapi wires the HTTP transport (Gin) to the notes service,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as correlation IDs, logging, panic recovery, metrics, CORS, and rate
// limiting, and demonstrates the apierr/respond packages end to end: every
// response on this surface (handler results, middleware rejections,
// fallbacks) goes through the same conversion rule.
//
// Design goals:
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - One error surface: nothing writes an error body by hand
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/tbourn/go-api-core/apierr"
	"github.com/tbourn/go-api-core/internal/config"
	"github.com/tbourn/go-api-core/internal/domain"
	"github.com/tbourn/go-api-core/internal/http/handlers"
	"github.com/tbourn/go-api-core/internal/http/middleware"
	"github.com/tbourn/go-api-core/internal/repo"
	"github.com/tbourn/go-api-core/internal/services"
	"github.com/tbourn/go-api-core/respond"
)

// noteRepoShim adapts the repository free functions to the services.NoteRepo
// interface expected by NoteService. This keeps the service decoupled from
// the concrete repo package while reusing existing functions.
type noteRepoShim struct{}

// CreateNote proxies repo.CreateNote.
func (noteRepoShim) CreateNote(ctx context.Context, db *gorm.DB, slug, title, body string) (*domain.Note, error) {
	return repo.CreateNote(ctx, db, slug, title, body)
}

// GetNote proxies repo.GetNote.
func (noteRepoShim) GetNote(ctx context.Context, db *gorm.DB, slug string) (*domain.Note, error) {
	return repo.GetNote(ctx, db, slug)
}

// CountNotes proxies repo.CountNotes.
func (noteRepoShim) CountNotes(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountNotes(ctx, db)
}

// ListNotesPage proxies repo.ListNotesPage.
func (noteRepoShim) ListNotesPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Note, error) {
	return repo.ListNotesPage(ctx, db, offset, limit)
}

// UpdateNote proxies repo.UpdateNote.
func (noteRepoShim) UpdateNote(ctx context.Context, db *gorm.DB, slug, title, body string) error {
	return repo.UpdateNote(ctx, db, slug, title, body)
}

// DeleteNote proxies repo.DeleteNote.
func (noteRepoShim) DeleteNote(ctx context.Context, db *gorm.DB, slug string) error {
	return repo.DeleteNote(ctx, db, slug)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (logging, metrics), rate limiting,
// CORS, compression, health and metrics endpoints, and then mounts the
// versioned public API under /api/v1.
//
// Middleware order matters:
//  1. RequestID: generate/propagate correlation id
//  2. Logger: structured access logs
//  3. Recovery: capture panics after logger
//  4. Body size limiter
//  5. Metrics
//  6. Rate limiter (per IP)
//  7. CORS and gzip
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 2) Structured logging
	r.Use(middleware.Logger())

	// 3) Panic recovery to the standard 500 response (with request id)
	r.Use(middleware.Recovery())

	// 4) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 5) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 6) Token-bucket rate limiter per IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 7) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks: unmatched routes and methods use the same error surface as
	// everything else. NoMethod goes through Other so the 405 mapping lives
	// in one place.
	r.NoRoute(func(c *gin.Context) {
		respond.Abort(c, apierr.NotFound().WithMessage("route not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		respond.Abort(c, apierr.Other(http.StatusMethodNotAllowed).WithMessage("method not allowed"))
	})

	// Liveness/health
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: service ← repo/db
	noteSvc := services.NewNoteService(db, noteRepoShim{})
	h := handlers.New(noteSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.POST("/notes", respond.Handler(h.CreateNote))
		api.GET("/notes", respond.Handler(h.ListNotes))
		api.GET("/notes/:slug", respond.Handler(h.GetNote))
		api.PUT("/notes/:slug", respond.Handler(h.UpdateNote))
		api.DELETE("/notes/:slug", respond.Handler(h.DeleteNote))
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	p := strings.TrimSpace(prefix)
	if p == "" || p == "/" {
		return r.Group("")
	}
	return r.Group(p)
}
