// Package memory is the in-memory store backend. Safe for concurrent
// access; intended for unit testing, development, and as the default
// backing for a single-process orchestrator.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/guidepost/guidepost/nav"
	"github.com/guidepost/guidepost/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

type cachedContext struct {
	context  nav.Context
	storedAt time.Time
}

// Store is a fully in-memory implementation of store.Store. All reads
// return deep copies so callers cannot mutate stored state.
type Store struct {
	mu sync.RWMutex

	histories map[string][]nav.State
	contexts  map[string]cachedContext
	backup    *store.Backup
}

// New returns a new empty Store.
func New() *Store {
	return &Store{
		histories: make(map[string][]nav.State),
		contexts:  make(map[string]cachedContext),
	}
}

// Migrate is a no-op for the memory store.
func (m *Store) Migrate(_ context.Context) error { return nil }

// Ping always succeeds for the memory store.
func (m *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (m *Store) Close() error { return nil }

// History returns a copy of the session's history, or (nil, nil) when
// none is recorded.
func (m *Store) History(_ context.Context, sessionID string) ([]nav.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states, ok := m.histories[sessionID]
	if !ok {
		return nil, nil
	}
	return copyStates(states), nil
}

// SetHistory replaces the session's history. An empty slice clears it.
func (m *Store) SetHistory(_ context.Context, sessionID string, states []nav.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(states) == 0 {
		delete(m.histories, sessionID)
		return nil
	}
	m.histories[sessionID] = copyStates(states)
	return nil
}

// DeleteHistory removes the session's history.
func (m *Store) DeleteHistory(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.histories, sessionID)
	return nil
}

// SessionIDs lists sessions with recorded history, sorted.
func (m *Store) SessionIDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.histories))
	for id := range m.histories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Context returns the cached context for the session, or (nil, zero, nil)
// on a miss.
func (m *Store) Context(_ context.Context, sessionID string) (*nav.Context, time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.contexts[sessionID]
	if !ok {
		return nil, time.Time{}, nil
	}
	cp := entry.context
	return &cp, entry.storedAt, nil
}

// SetContext caches a context for the session.
func (m *Store) SetContext(_ context.Context, sessionID string, c *nav.Context, storedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.contexts[sessionID] = cachedContext{context: *c, storedAt: storedAt}
	return nil
}

// DeleteContext drops the session's cached context.
func (m *Store) DeleteContext(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.contexts, sessionID)
	return nil
}

// ClearContexts drops every cached context.
func (m *Store) ClearContexts(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.contexts = make(map[string]cachedContext)
	return nil
}

// SaveBackup stores the full navigation backup.
func (m *Store) SaveBackup(_ context.Context, b *store.Backup) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := store.Backup{
		Histories: make(map[string][]nav.State, len(b.Histories)),
		Timestamp: b.Timestamp,
		Version:   b.Version,
	}
	for id, states := range b.Histories {
		cp.Histories[id] = copyStates(states)
	}
	m.backup = &cp
	return nil
}

// LoadBackup returns the stored backup, or (nil, nil) when none exists.
func (m *Store) LoadBackup(_ context.Context) (*store.Backup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.backup == nil {
		return nil, nil
	}
	cp := store.Backup{
		Histories: make(map[string][]nav.State, len(m.backup.Histories)),
		Timestamp: m.backup.Timestamp,
		Version:   m.backup.Version,
	}
	for id, states := range m.backup.Histories {
		cp.Histories[id] = copyStates(states)
	}
	return &cp, nil
}

// ClearBackup removes the stored backup.
func (m *Store) ClearBackup(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.backup = nil
	return nil
}

func copyStates(states []nav.State) []nav.State {
	out := make([]nav.State, len(states))
	for i, s := range states {
		out[i] = s.Clone()
	}
	return out
}
