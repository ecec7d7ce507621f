package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/guidepost/guidepost/nav"
	"github.com/guidepost/guidepost/store"
)

// History returns the session's navigation history, or (nil, nil) when
// none is recorded. An undecodable payload is reported as store.ErrCorrupt.
func (s *Store) History(ctx context.Context, sessionID string) ([]nav.State, error) {
	raw, err := s.client.Get(ctx, historyKey(sessionID)).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("guidepost/redis: get history: %w", err)
	}

	var states []nav.State
	if err := json.Unmarshal([]byte(raw), &states); err != nil {
		return nil, fmt.Errorf("guidepost/redis: decode history %q: %w", sessionID, store.ErrCorrupt)
	}
	return states, nil
}

// SetHistory replaces the session's history. An empty slice clears it.
func (s *Store) SetHistory(ctx context.Context, sessionID string, states []nav.State) error {
	if len(states) == 0 {
		return s.DeleteHistory(ctx, sessionID)
	}

	data, err := json.Marshal(states)
	if err != nil {
		return fmt.Errorf("guidepost/redis: encode history: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, historyKey(sessionID), data, 0)
	pipe.SAdd(ctx, sessionIDsKey, sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("guidepost/redis: set history: %w", err)
	}
	return nil
}

// DeleteHistory removes the session's history.
func (s *Store) DeleteHistory(ctx context.Context, sessionID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, historyKey(sessionID))
	pipe.SRem(ctx, sessionIDsKey, sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("guidepost/redis: delete history: %w", err)
	}
	return nil
}

// SessionIDs lists sessions with recorded history.
func (s *Store) SessionIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, sessionIDsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("guidepost/redis: list sessions: %w", err)
	}
	return ids, nil
}
