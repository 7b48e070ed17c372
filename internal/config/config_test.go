package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT", "CORS_ALLOW_ORIGINS",
		"CACHE_BACKEND", "REDIS_URL", "DATABASE_URL", "CACHE_TTL",
		"RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.Env != "dev" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CacheBackend != "memory" {
		t.Fatalf("expected memory backend, got %q", cfg.CacheBackend)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Fatalf("expected 24h TTL, got %v", cfg.CacheTTL)
	}
	if cfg.RateLimitPerMinute != 5 || cfg.RateLimitBurst != 5 {
		t.Fatalf("unexpected rate defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "Prod")
	t.Setenv("CACHE_BACKEND", "PG")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
	t.Setenv("RATE_LIMIT_BURST", "40")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example ,")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected normalized env, got %q", cfg.Env)
	}
	if cfg.CacheBackend != "postgres" {
		t.Fatalf("expected pg alias to normalize, got %q", cfg.CacheBackend)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Fatalf("unexpected TTL %v", cfg.CacheTTL)
	}
	if cfg.RateLimitPerMinute != 120 || cfg.RateLimitBurst != 40 {
		t.Fatalf("unexpected rate config: %+v", cfg)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORSAllowOrigins, want) {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowOrigins)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("RATE_LIMIT_BURST", "-3")
	t.Setenv("CACHE_TTL", "soon")

	cfg := Load()
	if cfg.RateLimitPerMinute != 5 || cfg.RateLimitBurst != 5 || cfg.CacheTTL != 24*time.Hour {
		t.Fatalf("bad values must fall back to defaults: %+v", cfg)
	}
}
