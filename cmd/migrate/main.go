package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"cv-reader/internal/cache"
	"cv-reader/internal/config"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := cache.Connect(ctx, cfg.DatabaseURL, cache.DefaultMigrateOptions())
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := cache.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
}
