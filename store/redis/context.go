package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/guidepost/guidepost/nav"
	"github.com/guidepost/guidepost/store"
)

// contextEnvelope wraps a cached context with its stored-at timestamp so
// freshness survives the round trip.
type contextEnvelope struct {
	Context  nav.Context `json:"context"`
	StoredAt time.Time   `json:"storedAt"`
}

// Context returns the cached context for the session, or (nil, zero, nil)
// on a miss. Undecodable payloads are reported as store.ErrCorrupt.
func (s *Store) Context(ctx context.Context, sessionID string) (*nav.Context, time.Time, error) {
	raw, err := s.client.Get(ctx, contextKey(sessionID)).Result()
	if err == goredis.Nil {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("guidepost/redis: get context: %w", err)
	}

	var env contextEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, time.Time{}, fmt.Errorf("guidepost/redis: decode context %q: %w", sessionID, store.ErrCorrupt)
	}
	return &env.Context, env.StoredAt, nil
}

// SetContext caches a context for the session with the store's TTL.
func (s *Store) SetContext(ctx context.Context, sessionID string, c *nav.Context, storedAt time.Time) error {
	data, err := json.Marshal(contextEnvelope{Context: *c, StoredAt: storedAt})
	if err != nil {
		return fmt.Errorf("guidepost/redis: encode context: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, contextKey(sessionID), data, s.contextTTL)
	pipe.SAdd(ctx, contextIDsKey, sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("guidepost/redis: set context: %w", err)
	}
	return nil
}

// DeleteContext drops the session's cached context.
func (s *Store) DeleteContext(ctx context.Context, sessionID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, contextKey(sessionID))
	pipe.SRem(ctx, contextIDsKey, sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("guidepost/redis: delete context: %w", err)
	}
	return nil
}

// ClearContexts drops every cached context.
func (s *Store) ClearContexts(ctx context.Context) error {
	ids, err := s.client.SMembers(ctx, contextIDsKey).Result()
	if err != nil {
		return fmt.Errorf("guidepost/redis: clear contexts smembers: %w", err)
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, contextKey(id))
	}
	pipe.Del(ctx, contextIDsKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("guidepost/redis: clear contexts: %w", err)
	}
	return nil
}
