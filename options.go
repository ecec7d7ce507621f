package guidepost

import (
	"log/slog"
	"time"

	"github.com/guidepost/guidepost/event"
	"github.com/guidepost/guidepost/history"
	"github.com/guidepost/guidepost/retry"
	"github.com/guidepost/guidepost/store"
)

// Option configures a Navigator.
type Option func(*Navigator) error

// WithLogger sets the structured logger for the navigator.
func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) error {
		n.logger = l
		return nil
	}
}

// WithStore sets the persistence backend for histories, cached contexts,
// and backups. Defaults to the in-memory store.
func WithStore(s store.Store) Option {
	return func(n *Navigator) error {
		n.store = s
		return nil
	}
}

// WithPlatform sets the native history port. Defaults to a no-op
// platform for headless operation.
func WithPlatform(p history.Platform) Option {
	return func(n *Navigator) error {
		n.platform = p
		return nil
	}
}

// WithBus sets the notification bus navigation signals are emitted on.
func WithBus(b *event.Bus) Option {
	return func(n *Navigator) error {
		n.bus = b
		return nil
	}
}

// WithRetryPolicy sets the retry policy wrapped around snapshot fetches.
// A nil IsRetryable classifier is replaced with the package default,
// which never retries not-found, validation, or corrupted-data errors.
func WithRetryPolicy(p retry.Policy) Option {
	return func(n *Navigator) error {
		n.policy = p
		return nil
	}
}

// WithOnlineCheck sets the connectivity probe consulted before fetching.
// Defaults to always online.
func WithOnlineCheck(online func() bool) Option {
	return func(n *Navigator) error {
		n.online = online
		return nil
	}
}

// WithClock overrides the time source. Used by tests to control
// freshness windows.
func WithClock(now func() time.Time) Option {
	return func(n *Navigator) error {
		n.now = now
		return nil
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(n *Navigator) error {
		n.config = c
		return nil
	}
}

// WithDebounceWindow sets how long a navigation request waits for a
// newer request to the same destination. Zero commits immediately.
func WithDebounceWindow(d time.Duration) Option {
	return func(n *Navigator) error {
		n.config.DebounceWindow = d
		return nil
	}
}

// WithProduct sets the product name used in native history titles.
func WithProduct(name string) Option {
	return func(n *Navigator) error {
		n.config.Product = name
		return nil
	}
}
