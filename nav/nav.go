// Package nav holds the shared navigation data model: history states,
// derived navigation contexts, paths, and breadcrumbs. These are plain
// records; all behavior lives in the route directory, the resume advisor,
// and the orchestrator that produce them.
package nav

import (
	"time"

	"github.com/guidepost/guidepost/id"
	"github.com/guidepost/guidepost/step"
)

// Transition classifies how a navigation state was reached.
type Transition string

// Transition kinds.
const (
	TransitionPush    Transition = "push"
	TransitionBack    Transition = "back"
	TransitionReplace Transition = "replace"
)

// State is one point in a session's navigation history. States are
// immutable once created: a back navigation produces a new State tagged
// TransitionBack rather than mutating the popped one.
type State struct {
	ID            id.EntryID        `json:"id"`
	SessionID     string            `json:"sessionId"`
	Step          step.Step         `json:"step"`
	Substep       string            `json:"substep,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
	Parameters    map[string]string `json:"parameters,omitempty"`
	Transition    Transition        `json:"transition"`
	SourceAddress string            `json:"sourceAddress,omitempty"`
}

// Clone returns a deep copy of the state. Parameters are copied so the
// original stays immutable.
func (s State) Clone() State {
	out := s
	if s.Parameters != nil {
		out.Parameters = make(map[string]string, len(s.Parameters))
		for k, v := range s.Parameters {
			out.Parameters[k] = v
		}
	}
	return out
}

// Path describes one step as a navigation target for a given session:
// where it leads, whether it is reachable, and what blocks it.
type Path struct {
	Step              step.Step     `json:"step"`
	Address           string        `json:"address"`
	Label             string        `json:"label"`
	Accessible        bool          `json:"accessible"`
	Completed         bool          `json:"completed"`
	Required          bool          `json:"required"`
	EstimatedDuration time.Duration `json:"estimatedDuration"`
	Prerequisites     []step.Step   `json:"prerequisites,omitempty"`
	Warnings          []string      `json:"warnings,omitempty"`
}

// Context is the derived navigation view for a session. It is recomputed
// on demand and may be cached with a short TTL for offline resilience,
// but is never the source of truth — progress truth lives in the session
// snapshot.
type Context struct {
	SessionID            string      `json:"sessionId"`
	CurrentAddress       string      `json:"currentAddress"`
	AvailablePaths       []Path      `json:"availablePaths"`
	BlockedPaths         []Path      `json:"blockedPaths"`
	RecommendedNextSteps []step.Step `json:"recommendedNextSteps"`
	CompletionPercent    float64     `json:"completionPercent"`
	CriticalIssues       []string    `json:"criticalIssues,omitempty"`
}

// Breadcrumb is one trail entry per step the user has reached, ordered by
// canonical traversal order.
type Breadcrumb struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Address     string    `json:"address"`
	Step        step.Step `json:"step"`
	Completed   bool      `json:"completed"`
	Accessible  bool      `json:"accessible"`
	Icon        string    `json:"icon,omitempty"`
	Description string    `json:"description,omitempty"`
}
