package guidepost

import "time"

// Config holds configuration for the Navigator.
type Config struct {
	// Product is the product name prefixed to native history titles.
	Product string

	// BackupFreshness is how long a persisted navigation backup stays
	// restorable before it is discarded.
	BackupFreshness time.Duration

	// ContextFreshness is how long a cached navigation context may be
	// served (only consulted when offline or on fetch failure).
	ContextFreshness time.Duration

	// HistoryRetention bounds per-session history length after cleanup.
	HistoryRetention int

	// DebounceWindow is how long a navigation request waits for a newer
	// request to the same destination before committing.
	DebounceWindow time.Duration

	// BackupVersion tags persisted backups; backups with a different
	// version are discarded on restore.
	BackupVersion string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Product:          "Guidepost",
		BackupFreshness:  24 * time.Hour,
		ContextFreshness: 1 * time.Hour,
		HistoryRetention: 50,
		DebounceWindow:   300 * time.Millisecond,
		BackupVersion:    "1",
	}
}
