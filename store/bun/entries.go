package bunstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/guidepost/guidepost/nav"
	"github.com/guidepost/guidepost/store"
)

// History returns the session's navigation history, or (nil, nil) when
// none is recorded. An undecodable payload is reported as store.ErrCorrupt.
func (s *Store) History(ctx context.Context, sessionID string) ([]nav.State, error) {
	var m historyModel
	err := s.db.NewSelect().Model(&m).Where("session_id = ?", sessionID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("guidepost/bun: get history: %w", err)
	}

	var states []nav.State
	if err := json.Unmarshal(m.Payload, &states); err != nil {
		return nil, fmt.Errorf("guidepost/bun: decode history %q: %w", sessionID, store.ErrCorrupt)
	}
	return states, nil
}

// SetHistory replaces the session's history. An empty slice clears it.
func (s *Store) SetHistory(ctx context.Context, sessionID string, states []nav.State) error {
	if len(states) == 0 {
		return s.DeleteHistory(ctx, sessionID)
	}

	payload, err := json.Marshal(states)
	if err != nil {
		return fmt.Errorf("guidepost/bun: encode history: %w", err)
	}

	m := &historyModel{
		SessionID: sessionID,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}
	_, err = s.db.NewInsert().Model(m).
		On("CONFLICT (session_id) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("guidepost/bun: set history: %w", err)
	}
	return nil
}

// DeleteHistory removes the session's history.
func (s *Store) DeleteHistory(ctx context.Context, sessionID string) error {
	_, err := s.db.NewDelete().Model((*historyModel)(nil)).
		Where("session_id = ?", sessionID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("guidepost/bun: delete history: %w", err)
	}
	return nil
}

// SessionIDs lists sessions with recorded history.
func (s *Store) SessionIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.NewSelect().Model((*historyModel)(nil)).
		Column("session_id").Order("session_id").Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("guidepost/bun: list sessions: %w", err)
	}
	return ids, nil
}

// Context returns the cached context for the session, or (nil, zero, nil)
// on a miss.
func (s *Store) Context(ctx context.Context, sessionID string) (*nav.Context, time.Time, error) {
	var m contextModel
	err := s.db.NewSelect().Model(&m).Where("session_id = ?", sessionID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("guidepost/bun: get context: %w", err)
	}

	var c nav.Context
	if err := json.Unmarshal(m.Payload, &c); err != nil {
		return nil, time.Time{}, fmt.Errorf("guidepost/bun: decode context %q: %w", sessionID, store.ErrCorrupt)
	}
	return &c, m.StoredAt, nil
}

// SetContext caches a context for the session.
func (s *Store) SetContext(ctx context.Context, sessionID string, c *nav.Context, storedAt time.Time) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("guidepost/bun: encode context: %w", err)
	}

	m := &contextModel{
		SessionID: sessionID,
		Payload:   payload,
		StoredAt:  storedAt,
	}
	_, err = s.db.NewInsert().Model(m).
		On("CONFLICT (session_id) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("stored_at = EXCLUDED.stored_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("guidepost/bun: set context: %w", err)
	}
	return nil
}

// DeleteContext drops the session's cached context.
func (s *Store) DeleteContext(ctx context.Context, sessionID string) error {
	_, err := s.db.NewDelete().Model((*contextModel)(nil)).
		Where("session_id = ?", sessionID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("guidepost/bun: delete context: %w", err)
	}
	return nil
}

// ClearContexts drops every cached context.
func (s *Store) ClearContexts(ctx context.Context) error {
	_, err := s.db.NewDelete().Model((*contextModel)(nil)).Where("1 = 1").Exec(ctx)
	if err != nil {
		return fmt.Errorf("guidepost/bun: clear contexts: %w", err)
	}
	return nil
}

// SaveBackup stores the full navigation backup in the singleton row.
func (s *Store) SaveBackup(ctx context.Context, b *store.Backup) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("guidepost/bun: encode backup: %w", err)
	}

	m := &backupModel{
		ID:      backupRowID,
		Payload: payload,
		SavedAt: time.Now().UTC(),
	}
	_, err = s.db.NewInsert().Model(m).
		On("CONFLICT (id) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("saved_at = EXCLUDED.saved_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("guidepost/bun: save backup: %w", err)
	}
	return nil
}

// LoadBackup returns the stored backup, or (nil, nil) when none exists.
func (s *Store) LoadBackup(ctx context.Context) (*store.Backup, error) {
	var m backupModel
	err := s.db.NewSelect().Model(&m).Where("id = ?", backupRowID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("guidepost/bun: load backup: %w", err)
	}

	var b store.Backup
	if err := json.Unmarshal(m.Payload, &b); err != nil {
		return nil, fmt.Errorf("guidepost/bun: decode backup: %w", store.ErrCorrupt)
	}
	return &b, nil
}

// ClearBackup removes the stored backup.
func (s *Store) ClearBackup(ctx context.Context) error {
	_, err := s.db.NewDelete().Model((*backupModel)(nil)).
		Where("id = ?", backupRowID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("guidepost/bun: clear backup: %w", err)
	}
	return nil
}
