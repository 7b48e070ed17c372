package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cv-reader/internal/cache"
	"cv-reader/internal/config"
	"cv-reader/internal/parsing"
	"cv-reader/internal/server/middleware"
	"cv-reader/internal/telemetry"
)

const version = "1.0.0"

// NewRouter builds the gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store := newCacheStore(cfg)
	svc := &parsing.Service{Cache: store, TTL: cfg.CacheTTL}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigins),
	)

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "cv-reader",
			"version": version,
			"endpoints": []string{
				"GET /api/v1/health",
				"POST /api/v1/parse-cv",
				"POST /api/v1/parse-text",
			},
		})
	})

	api := engine.Group("/api/v1")
	api.GET("/health", healthHandler(store, cfg.CacheBackend))

	limiter := middleware.NewRateLimiter(time.Now)
	rule := middleware.RuleFromPerMinute(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	limited := api.Group("")
	limited.Use(middleware.RateLimit(limiter, rule))
	parsing.NewHandler(svc).RegisterRoutes(limited)

	return engine
}

func healthHandler(store cache.Store, backend string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cacheStatus := "ok"
		if err := store.Ping(c.Request.Context()); err != nil {
			cacheStatus = "unavailable"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"cache":  gin.H{"backend": backend, "status": cacheStatus},
		})
	}
}

// newCacheStore builds the configured cache backend. A backend that
// cannot be reached at startup degrades to the in-process store so the
// service still comes up.
func newCacheStore(cfg config.Config) cache.Store {
	switch cfg.CacheBackend {
	case "redis":
		store, err := cache.NewRedis(cfg.RedisURL)
		if err != nil {
			telemetry.Warn("cache.redis_unavailable", map[string]any{"error": err.Error()})
			break
		}
		return store
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		database, err := cache.Connect(ctx, cfg.DatabaseURL, cache.DefaultServerOptions())
		if err != nil {
			telemetry.Warn("cache.postgres_unavailable", map[string]any{"error": err.Error()})
			break
		}
		if err := cache.RunMigrations(ctx, database); err != nil {
			telemetry.Warn("cache.migrate_failed", map[string]any{"error": err.Error()})
			break
		}
		return &cache.PG{DB: database}
	}
	return cache.NewMemory(time.Now)
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
