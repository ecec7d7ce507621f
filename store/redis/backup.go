package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/guidepost/guidepost/store"
)

// SaveBackup stores the full navigation backup.
func (s *Store) SaveBackup(ctx context.Context, b *store.Backup) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("guidepost/redis: encode backup: %w", err)
	}
	if err := s.client.Set(ctx, backupKey, data, 0).Err(); err != nil {
		return fmt.Errorf("guidepost/redis: save backup: %w", err)
	}
	return nil
}

// LoadBackup returns the stored backup, or (nil, nil) when none exists.
// Undecodable payloads are reported as store.ErrCorrupt.
func (s *Store) LoadBackup(ctx context.Context) (*store.Backup, error) {
	raw, err := s.client.Get(ctx, backupKey).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("guidepost/redis: load backup: %w", err)
	}

	var b store.Backup
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return nil, fmt.Errorf("guidepost/redis: decode backup: %w", store.ErrCorrupt)
	}
	return &b, nil
}

// ClearBackup removes the stored backup.
func (s *Store) ClearBackup(ctx context.Context) error {
	if err := s.client.Del(ctx, backupKey).Err(); err != nil {
		return fmt.Errorf("guidepost/redis: clear backup: %w", err)
	}
	return nil
}
