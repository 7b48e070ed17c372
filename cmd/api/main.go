package main

import (
	"log"

	"cv-reader/internal/config"
	"cv-reader/internal/server"
	"cv-reader/internal/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(cfg.LogLevel, cfg.LogFormat)

	r := server.NewRouter(cfg)

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.starting", map[string]any{"addr": addr, "cache_backend": cfg.CacheBackend})

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
