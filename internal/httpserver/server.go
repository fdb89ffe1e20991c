// Package httpserver wires the gin engine, middleware chain, and route
// table for Nexarch's ingest and read surfaces.
package httpserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nexarch/core/internal/augment"
	"github.com/nexarch/core/internal/auth"
	"github.com/nexarch/core/internal/cache"
	"github.com/nexarch/core/internal/config"
	"github.com/nexarch/core/internal/ingest"
	"github.com/nexarch/core/internal/ratelimit"
	"github.com/nexarch/core/internal/store"
	"github.com/nexarch/core/internal/telemetry"
)

// Deps bundles every collaborator a route handler might need.
type Deps struct {
	Config      *config.Config
	Store       store.SpanStore
	Ingest      *ingest.Service
	Cache       *cache.Cache
	Limiter     *ratelimit.Limiter
	TokenIssuer *auth.TokenIssuer
	Augment     *augment.Client
	Log         zerolog.Logger
}

// New builds the configured gin engine, wired with CORS, auth, rate
// limiting, and every route Nexarch exposes.
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(deps.Log))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "X-Requested-With", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/api/v1/health", healthHandler)
	r.GET("/metrics", gin.WrapH(telemetry.Handler()))

	api := r.Group("/api/v1")
	api.Use(auth.Middleware(deps.TokenIssuer))
	api.Use(rateLimitMiddleware(deps.Limiter))
	{
		registerIngestRoutes(api, deps)
		registerArchitectureRoutes(api, deps)
		registerWorkflowRoutes(api, deps)
		registerCacheRoutes(api, deps)
	}

	return r
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("tenant", auth.TenantFromContext(c)).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

func rateLimitMiddleware(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := auth.TenantFromContext(c)
		if !limiter.Allow(tenant) {
			c.AbortWithStatusJSON(429, gin.H{"detail": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
