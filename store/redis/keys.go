package redis

// Redis key naming conventions for navigation data.
// All keys are prefixed with "guidepost:" to avoid collisions.

const keyPrefix = "guidepost:"

// historyKey returns the key for a session's history: guidepost:history:{sessionID}
func historyKey(sessionID string) string { return keyPrefix + "history:" + sessionID }

// sessionIDsKey is the Set tracking sessions with recorded history.
const sessionIDsKey = keyPrefix + "session_ids"

// contextKey returns the key for a cached context: guidepost:context:{sessionID}
func contextKey(sessionID string) string { return keyPrefix + "context:" + sessionID }

// contextIDsKey is the Set tracking sessions with cached contexts.
const contextIDsKey = keyPrefix + "context_ids"

// backupKey holds the full navigation backup.
const backupKey = keyPrefix + "backup"
