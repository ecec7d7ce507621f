// Package session models the read-only view of a workflow session owned
// by the external session service, and the port through which Guidepost
// fetches it. The snapshot is the source of truth for progress; this
// module never mutates it.
package session

import (
	"context"
	"time"

	"github.com/guidepost/guidepost/step"
)

// StepProgress is the per-step progress record inside a snapshot.
type StepProgress struct {
	// CompletionPercent is 0..100 for the step.
	CompletionPercent float64 `json:"completionPercent"`
	// TimeSpent is the accumulated working time on the step.
	TimeSpent time.Duration `json:"timeSpent"`
}

// Snapshot is one session's authoritative progress state as reported by
// the session service. Read-only to this module.
type Snapshot struct {
	SessionID      string                     `json:"sessionId"`
	CurrentStep    step.Step                  `json:"currentStep"`
	CompletedSteps []step.Step                `json:"completedSteps"`
	Progress       map[step.Step]StepProgress `json:"progress,omitempty"`

	// EnabledFeatures lists the feature flags active for the session.
	EnabledFeatures []string `json:"enabledFeatures,omitempty"`

	// ValidationIssues lists unresolved validation issue categories.
	ValidationIssues []string `json:"validationIssues,omitempty"`

	// FailedCheckpoints counts processing checkpoints that failed.
	FailedCheckpoints int `json:"failedCheckpoints,omitempty"`
}

// CompletedSet returns the completed steps as a set.
func (s *Snapshot) CompletedSet() map[step.Step]bool {
	m := make(map[step.Step]bool, len(s.CompletedSteps))
	for _, st := range s.CompletedSteps {
		m[st] = true
	}
	return m
}

// StepDone reports whether the given step is in the completed set.
func (s *Snapshot) StepDone(st step.Step) bool {
	for _, c := range s.CompletedSteps {
		if c == st {
			return true
		}
	}
	return false
}

// CurrentPercent returns the in-progress completion percent of the
// current step, 0 when no progress record exists.
func (s *Snapshot) CurrentPercent() float64 {
	return s.Progress[s.CurrentStep].CompletionPercent
}

// Service is the port to the external session store.
//
// GetSnapshot returns (nil, nil) when no session exists for the given id;
// the caller decides whether that is an error. Transport failures are
// returned as errors and may be retried by the caller.
type Service interface {
	GetSnapshot(ctx context.Context, sessionID string) (*Snapshot, error)
}
