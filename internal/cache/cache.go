package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when no live entry exists for the key.
var ErrMiss = errors.New("cache: miss")

// Store is the opaque get/put contract parse results are kept behind.
// Entries expire after the TTL passed to Set; expiry is the backend's
// concern and a stale read is indistinguishable from a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// Key builds the cache key for a document fingerprint.
func Key(fingerprint string) string {
	return "cv:" + fingerprint
}
