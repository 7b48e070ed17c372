package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PG keeps cache entries in Postgres for deployments that already run one
// and want no extra infrastructure. Expired rows are filtered on read and
// reaped opportunistically on write.
type PG struct {
	DB *sql.DB
}

func (p *PG) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM cv_cache WHERE key = $1 AND expires_at > now()`
	var value []byte
	err := p.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: pg get: %w", err)
	}
	return value, nil
}

func (p *PG) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	const query = `
INSERT INTO cv_cache (key, value, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`
	expiresAt := time.Now().UTC().Add(ttl)
	if _, err := p.DB.ExecContext(ctx, query, key, value, expiresAt); err != nil {
		return fmt.Errorf("cache: pg set: %w", err)
	}
	if _, err := p.DB.ExecContext(ctx, `DELETE FROM cv_cache WHERE expires_at <= now()`); err != nil {
		return fmt.Errorf("cache: pg reap: %w", err)
	}
	return nil
}

func (p *PG) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}
