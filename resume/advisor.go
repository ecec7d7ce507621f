// Package resume computes resumption recommendations for returning users.
// The advisor is pure: given a session snapshot it derives where to pick
// the workflow back up, what still needs doing, and what may be skipped.
// It performs no network or storage access.
package resume

import (
	"fmt"
	"time"

	"github.com/guidepost/guidepost/route"
	"github.com/guidepost/guidepost/session"
	"github.com/guidepost/guidepost/step"
)

// Priority ranks how urgently a recommendation should be surfaced.
type Priority string

// Priority levels.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Recommendation is the advisor's answer for a returning user.
type Recommendation struct {
	Step              step.Step     `json:"step"`
	Reason            string        `json:"reason"`
	EstimatedDuration time.Duration `json:"estimatedDuration"`
	Confidence        float64       `json:"confidence"`
	Priority          Priority      `json:"priority"`
	Alternatives      []step.Step   `json:"alternatives,omitempty"`
	RequiredData      []string      `json:"requiredData,omitempty"`
	Warnings          []string      `json:"warnings,omitempty"`
}

// Advisor derives resume guidance from session snapshots. Construct with
// NewAdvisor; safe for concurrent use.
type Advisor struct {
	routes *route.Directory
}

// NewAdvisor creates an advisor backed by the given route directory.
func NewAdvisor(routes *route.Directory) *Advisor {
	return &Advisor{routes: routes}
}

// SuggestResumePoint recommends where a returning user should continue.
// The first main-pipeline step not yet completed wins; when the whole
// main pipeline is done, the optional enrichment stage is recommended if
// still open, and the terminal step otherwise.
func (a *Advisor) SuggestResumePoint(snap *session.Snapshot) Recommendation {
	done := snap.CompletedSet()

	for _, s := range step.MainSteps() {
		if !done[s] {
			return a.recommend(s, snap, fmt.Sprintf("%s is the next incomplete step", a.routes.Title(s)))
		}
	}

	if !done[step.Enrichment] {
		return a.recommend(step.Enrichment, snap, "main pipeline complete; optional enrichment remains")
	}

	return a.recommend(step.Completed, snap, "all steps complete")
}

// recommend fills in the fixed heuristics shared by every branch:
// confidence 0.9 and high priority, with alternatives drawn from the
// remaining accessible steps.
func (a *Advisor) recommend(s step.Step, snap *session.Snapshot, reason string) Recommendation {
	done := snap.CompletedSet()

	var est time.Duration
	if def, ok := a.routes.RouteFor(s); ok {
		est = def.EstimatedDuration
	}

	var alts []step.Step
	for _, cand := range step.Pipeline() {
		if cand == s || done[cand] {
			continue
		}
		if step.Accessible(cand, done) {
			alts = append(alts, cand)
		}
	}

	var warnings []string
	if len(snap.ValidationIssues) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d unresolved validation issue(s)", len(snap.ValidationIssues)))
	}

	return Recommendation{
		Step:              s,
		Reason:            reason,
		EstimatedDuration: est,
		Confidence:        0.9,
		Priority:          PriorityHigh,
		Alternatives:      alts,
		RequiredData:      requiredData(s),
		Warnings:          warnings,
	}
}

// requiredData names the inputs a step needs before it can be worked on.
func requiredData(s step.Step) []string {
	switch s {
	case step.Intake:
		return []string{"source document"}
	case step.Features:
		return []string{"analysis results"}
	case step.Templates:
		return []string{"selected features"}
	case step.Enrichment:
		return []string{"analysis results", "media assets"}
	default:
		return nil
	}
}

// NextActions lists human-readable actions for every unmet condition:
// finishing the in-progress current step and resolving each outstanding
// validation issue category.
func (a *Advisor) NextActions(snap *session.Snapshot) []string {
	var actions []string

	if snap.CurrentStep != "" && !snap.StepDone(snap.CurrentStep) && snap.CurrentPercent() < 100 {
		actions = append(actions, fmt.Sprintf("Finish %s (%.0f%% done)",
			a.routes.Title(snap.CurrentStep), snap.CurrentPercent()))
	}

	for _, issue := range snap.ValidationIssues {
		actions = append(actions, fmt.Sprintf("Resolve %s validation issues", issue))
	}

	return actions
}

// SkippableSteps lists steps the user may safely skip: only the optional
// enrichment stage, and only once the analysis step is complete and
// enrichment itself is not.
func (a *Advisor) SkippableSteps(snap *session.Snapshot) []step.Step {
	if snap.StepDone(step.Analysis) && !snap.StepDone(step.Enrichment) {
		return []step.Step{step.Enrichment}
	}
	return nil
}
