// Package bunstore implements store.Store on a relational database via
// the Bun ORM. The intended dialect is SQLite (through bun's sqliteshim
// driver), which is the durable local storage for a single-device
// deployment; any dialect bun supports will work since the schema is
// three key/value tables.
//
// Usage:
//
//	sqldb, _ := sql.Open(sqliteshim.ShimName, "file:guidepost.db")
//	db := bun.NewDB(sqldb, sqlitedialect.New())
//	s := bunstore.New(db)
//	if err := s.Migrate(ctx); err != nil { ... }
package bunstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/guidepost/guidepost/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Store is a Bun implementation of store.Store. The caller owns the
// *bun.DB lifecycle; Store never closes it.
type Store struct {
	db     *bun.DB
	logger *slog.Logger
}

// New creates a new Bun store.
func New(db *bun.DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB returns the underlying *bun.DB for advanced usage.
func (s *Store) DB() *bun.DB { return s.db }

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	models := []any{
		(*historyModel)(nil),
		(*contextModel)(nil),
		(*backupModel)(nil),
	}
	for _, m := range models {
		if _, err := s.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("guidepost/bun: migrate %T: %w", m, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op — the caller owns the db lifecycle.
func (s *Store) Close() error { return nil }
