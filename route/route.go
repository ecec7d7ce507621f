// Package route is the static route directory for the workflow: metadata
// for every step and bidirectional conversion between navigation states
// and shareable addresses. The directory is built once at construction
// and never mutated; nothing in this package performs I/O.
package route

import (
	"time"

	"github.com/guidepost/guidepost/step"
)

// Definition is the immutable route record for one step.
type Definition struct {
	Step              step.Step
	Path              string
	Title             string
	Icon              string
	Description       string
	EstimatedDuration time.Duration
}

// definitions is the static route table, in pipeline order.
var definitions = []Definition{
	{
		Step:              step.Intake,
		Path:              "/workflow/intake",
		Title:             "Document Intake",
		Icon:              "upload",
		Description:       "Upload source documents and start a session",
		EstimatedDuration: 3 * time.Minute,
	},
	{
		Step:              step.Processing,
		Path:              "/workflow/processing",
		Title:             "Processing",
		Icon:              "loader",
		Description:       "Extract and normalize document content",
		EstimatedDuration: 2 * time.Minute,
	},
	{
		Step:              step.Analysis,
		Path:              "/workflow/analysis",
		Title:             "Analysis",
		Icon:              "scan",
		Description:       "Review the automated content analysis",
		EstimatedDuration: 5 * time.Minute,
	},
	{
		Step:              step.Features,
		Path:              "/workflow/features",
		Title:             "Feature Selection",
		Icon:              "sliders",
		Description:       "Choose the features to apply to the document",
		EstimatedDuration: 4 * time.Minute,
	},
	{
		Step:              step.Templates,
		Path:              "/workflow/templates",
		Title:             "Template Selection",
		Icon:              "layout",
		Description:       "Pick a presentation template",
		EstimatedDuration: 3 * time.Minute,
	},
	{
		Step:              step.Preview,
		Path:              "/workflow/preview",
		Title:             "Preview",
		Icon:              "eye",
		Description:       "Preview the generated document",
		EstimatedDuration: 3 * time.Minute,
	},
	{
		Step:              step.Results,
		Path:              "/workflow/results",
		Title:             "Results",
		Icon:              "check-circle",
		Description:       "Download and share the finished document",
		EstimatedDuration: 2 * time.Minute,
	},
	{
		Step:              step.Enrichment,
		Path:              "/workflow/enrichment",
		Title:             "Enrichment",
		Icon:              "sparkles",
		Description:       "Optional media and portal enrichment",
		EstimatedDuration: 8 * time.Minute,
	},
	{
		Step:              step.Completed,
		Path:              "/workflow/completed",
		Title:             "Completed",
		Icon:              "flag",
		Description:       "Session finished",
		EstimatedDuration: 0,
	},
}
