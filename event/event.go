// Package event carries navigation notifications to the rest of the
// application. Whenever the orchestrator commits a navigation — a push,
// a back, or an externally-driven pop from the native history — it emits
// a Notification on the Bus so other components can react.
package event

import (
	"time"

	"github.com/guidepost/guidepost/id"
	"github.com/guidepost/guidepost/nav"
)

// Kind classifies a navigation notification.
type Kind string

// Notification kinds.
const (
	KindPushed   Kind = "pushed"
	KindPopped   Kind = "popped"
	KindReplaced Kind = "replaced"
)

// Notification is one navigation signal: the newly resolved state and
// how it came about.
type Notification struct {
	ID    id.SignalID `json:"id"`
	Kind  Kind        `json:"kind"`
	State nav.State   `json:"state"`
	At    time.Time   `json:"at"`
}
