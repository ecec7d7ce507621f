package history

import (
	"time"

	"github.com/guidepost/guidepost/step"
)

// Entry is the opaque record written to the platform's native history
// mechanism on every push, and delivered back on externally-driven
// back/forward navigation.
type Entry struct {
	SessionID string    `json:"sessionId"`
	Step      step.Step `json:"step"`
	Substep   string    `json:"substep,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	// Title is the display title written alongside the entry.
	Title string `json:"title"`
	// Address is the shareable address for the entry.
	Address string `json:"address"`
}

// Platform is the port to the native history mechanism (a browser
// History API, a desktop shell, or a headless fake in tests). The core
// has no compile-time dependency on any concrete platform.
type Platform interface {
	// PushEntry writes an entry to the native history. Failures are the
	// platform's own errors; the orchestrator logs and swallows them
	// since navigation bookkeeping must never crash the caller.
	PushEntry(e Entry) error

	// OnPopped registers the handler invoked when the platform reports
	// an externally-driven navigation (native back/forward). It returns
	// a detach function.
	OnPopped(handler func(Entry)) (detach func())
}

// NopPlatform is a Platform that records nothing and never reports pops.
// Useful for headless operation.
type NopPlatform struct{}

// PushEntry discards the entry.
func (NopPlatform) PushEntry(Entry) error { return nil }

// OnPopped never invokes the handler.
func (NopPlatform) OnPopped(func(Entry)) func() { return func() {} }
