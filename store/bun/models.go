package bunstore

import (
	"time"

	"github.com/uptrace/bun"
)

// historyModel stores one session's navigation history as a JSON payload.
type historyModel struct {
	bun.BaseModel `bun:"table:guidepost_histories"`

	SessionID string    `bun:"session_id,pk"`
	Payload   []byte    `bun:"payload,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// contextModel stores one session's cached navigation context.
type contextModel struct {
	bun.BaseModel `bun:"table:guidepost_contexts"`

	SessionID string    `bun:"session_id,pk"`
	Payload   []byte    `bun:"payload,notnull"`
	StoredAt  time.Time `bun:"stored_at,notnull"`
}

// backupModel stores the single full navigation backup row.
type backupModel struct {
	bun.BaseModel `bun:"table:guidepost_backups"`

	ID      int64     `bun:"id,pk"`
	Payload []byte    `bun:"payload,notnull"`
	SavedAt time.Time `bun:"saved_at,notnull"`
}

// backupRowID is the fixed primary key of the singleton backup row.
const backupRowID = 1
