// Package history keeps each session's navigation trail. The log is
// append-only on forward navigation; a back operation pops the most
// recent entry permanently — there is no forward/redo stack, so a
// forward after a back starts a new branch. That matches the shipped
// product behavior and is kept deliberately (flagged for product review
// rather than changed here).
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/guidepost/guidepost/id"
	"github.com/guidepost/guidepost/nav"
	"github.com/guidepost/guidepost/store"
)

// DefaultRetention bounds how many entries a session keeps after a
// truncation pass.
const DefaultRetention = 50

// Log records per-session navigation history over a HistoryStore.
type Log struct {
	store     store.HistoryStore
	retention int
}

// NewLog creates a history log. retention <= 0 uses DefaultRetention.
func NewLog(s store.HistoryStore, retention int) *Log {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Log{store: s, retention: retention}
}

// Push appends a state to its session's history.
func (l *Log) Push(ctx context.Context, st nav.State) error {
	states, err := l.store.History(ctx, st.SessionID)
	if err != nil {
		return fmt.Errorf("history: load %q: %w", st.SessionID, err)
	}
	states = append(states, st.Clone())
	if err := l.store.SetHistory(ctx, st.SessionID, states); err != nil {
		return fmt.Errorf("history: save %q: %w", st.SessionID, err)
	}
	return nil
}

// Back pops the most recent entry and returns a copy of the new tail
// tagged as a back transition. Returns (nil, nil) — not an error — when
// the session has fewer than two entries: there is nowhere to go back to.
func (l *Log) Back(ctx context.Context, sessionID string) (*nav.State, error) {
	states, err := l.store.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("history: load %q: %w", sessionID, err)
	}
	if len(states) < 2 {
		return nil, nil
	}

	states = states[:len(states)-1]
	if err := l.store.SetHistory(ctx, sessionID, states); err != nil {
		return nil, fmt.Errorf("history: save %q: %w", sessionID, err)
	}

	tail := states[len(states)-1].Clone()
	tail.ID = id.NewEntryID()
	tail.Transition = nav.TransitionBack
	tail.Timestamp = time.Now().UTC()
	return &tail, nil
}

// Tail returns a copy of the session's most recent entry, or (nil, nil)
// when the session has no history.
func (l *Log) Tail(ctx context.Context, sessionID string) (*nav.State, error) {
	states, err := l.store.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("history: load %q: %w", sessionID, err)
	}
	if len(states) == 0 {
		return nil, nil
	}
	tail := states[len(states)-1].Clone()
	return &tail, nil
}

// Len returns the number of entries recorded for the session.
func (l *Log) Len(ctx context.Context, sessionID string) (int, error) {
	states, err := l.store.History(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("history: load %q: %w", sessionID, err)
	}
	return len(states), nil
}

// Truncate drops all but the most recent retention entries for the
// session, bounding memory over a long-lived session.
func (l *Log) Truncate(ctx context.Context, sessionID string) error {
	states, err := l.store.History(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("history: load %q: %w", sessionID, err)
	}
	if len(states) <= l.retention {
		return nil
	}
	trimmed := states[len(states)-l.retention:]
	if err := l.store.SetHistory(ctx, sessionID, trimmed); err != nil {
		return fmt.Errorf("history: truncate %q: %w", sessionID, err)
	}
	return nil
}

// TruncateAll applies Truncate to every session with recorded history.
func (l *Log) TruncateAll(ctx context.Context) error {
	ids, err := l.store.SessionIDs(ctx)
	if err != nil {
		return fmt.Errorf("history: list sessions: %w", err)
	}
	for _, sid := range ids {
		if err := l.Truncate(ctx, sid); err != nil {
			return err
		}
	}
	return nil
}
