// Package store defines the persistence interfaces behind the navigation
// orchestrator: per-session history, the short-lived context cache, and
// the full navigation backup consulted across reloads. Each concern is a
// composable interface; the composite Store composes them all.
// Backends: Memory, Redis, and Bun (SQLite).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/guidepost/guidepost/nav"
)

// ErrCorrupt marks a persisted entry whose payload could not be decoded.
// Callers treat it as a cache miss and delete the offending entry; it is
// never surfaced to the orchestrator's callers.
var ErrCorrupt = errors.New("store: corrupt entry")

// Backup is the full navigation state snapshot persisted on unload and
// restored on load, subject to a freshness window.
type Backup struct {
	// Histories maps session id to that session's navigation history.
	Histories map[string][]nav.State `json:"histories"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
}

// HistoryStore persists per-session navigation histories.
// History returns (nil, nil) when the session has no recorded history.
type HistoryStore interface {
	History(ctx context.Context, sessionID string) ([]nav.State, error)
	SetHistory(ctx context.Context, sessionID string, states []nav.State) error
	DeleteHistory(ctx context.Context, sessionID string) error
	// SessionIDs lists the sessions with recorded history.
	SessionIDs(ctx context.Context) ([]string, error)
}

// ContextCache persists derived navigation contexts with their stored-at
// timestamps so freshness can be checked at read time.
// Context returns (nil, zero, nil) on a miss.
type ContextCache interface {
	Context(ctx context.Context, sessionID string) (*nav.Context, time.Time, error)
	SetContext(ctx context.Context, sessionID string, c *nav.Context, storedAt time.Time) error
	DeleteContext(ctx context.Context, sessionID string) error
	ClearContexts(ctx context.Context) error
}

// BackupStore persists the full navigation backup.
// LoadBackup returns (nil, nil) when no backup exists.
type BackupStore interface {
	SaveBackup(ctx context.Context, b *Backup) error
	LoadBackup(ctx context.Context) (*Backup, error)
	ClearBackup(ctx context.Context) error
}

// Store is the composite persistence interface.
type Store interface {
	HistoryStore
	ContextCache
	BackupStore

	// Migrate prepares backing schema where one exists.
	Migrate(ctx context.Context) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
