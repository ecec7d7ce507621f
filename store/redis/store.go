// Package redis implements store.Store on Redis, for deployments where
// navigation state must survive the process or be shared across replicas
// of the client backend. Histories and backups are stored as JSON string
// values; cached contexts carry a TTL matching their freshness window.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	s := redisstore.New(client)
//	if err := s.Ping(ctx); err != nil { ... }
package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guidepost/guidepost/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithContextTTL sets the expiry applied to cached contexts. Zero
// disables expiry; the default matches the 1h context freshness window.
func WithContextTTL(ttl time.Duration) Option {
	return func(s *Store) { s.contextTTL = ttl }
}

// Store implements store.Store backed by Redis.
type Store struct {
	client     redis.Cmdable
	logger     *slog.Logger
	contextTTL time.Duration
}

// New creates a Redis-backed store. The caller owns the Redis client
// lifecycle.
func New(client redis.Cmdable, opts ...Option) *Store {
	s := &Store{
		client:     client,
		logger:     slog.Default(),
		contextTTL: time.Hour,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Client returns the underlying Redis client.
func (s *Store) Client() redis.Cmdable { return s.client }

// Migrate is a no-op for Redis (schemaless).
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping verifies the Redis connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close is a no-op — the caller owns the Redis client lifecycle.
func (s *Store) Close() error { return nil }
