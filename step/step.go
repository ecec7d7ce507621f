// Package step models the stages of the guided document workflow: the
// fixed step enumeration, the canonical pipeline order, the prerequisite
// graph that gates reachability, and the completion arithmetic derived
// from a session snapshot.
package step

// Step identifies one stage of the guided workflow. The enumeration is
// process-wide static configuration; steps never change identity.
type Step string

// Workflow steps in canonical pipeline order.
const (
	Intake     Step = "intake"
	Processing Step = "processing"
	Analysis   Step = "analysis"
	Features   Step = "features"
	Templates  Step = "templates"
	Preview    Step = "preview"
	Results    Step = "results"
	// Enrichment is the optional post-pipeline stage.
	Enrichment Step = "enrichment"
	// Completed is the terminal step.
	Completed Step = "completed"
)

// pipeline is the canonical traversal order, main steps first, then the
// optional enrichment stage, then the terminal step.
var pipeline = []Step{
	Intake,
	Processing,
	Analysis,
	Features,
	Templates,
	Preview,
	Results,
	Enrichment,
	Completed,
}

// mainSteps are the required pipeline stages that drive the base
// completion percentage.
var mainSteps = []Step{
	Intake,
	Processing,
	Analysis,
	Features,
	Templates,
	Preview,
	Results,
}

// Pipeline returns all steps in canonical order. The returned slice is a
// copy; callers may mutate it freely.
func Pipeline() []Step {
	out := make([]Step, len(pipeline))
	copy(out, pipeline)
	return out
}

// MainSteps returns the required pipeline stages in order.
func MainSteps() []Step {
	out := make([]Step, len(mainSteps))
	copy(out, mainSteps)
	return out
}

// Parse returns the Step for s, or ("", false) if s is not a known step.
func Parse(s string) (Step, bool) {
	for _, st := range pipeline {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Valid reports whether s is a member of the step enumeration.
func (s Step) Valid() bool {
	_, ok := Parse(string(s))
	return ok
}

// Required reports whether s is part of the required main pipeline.
func (s Step) Required() bool {
	for _, m := range mainSteps {
		if s == m {
			return true
		}
	}
	return false
}

// Optional reports whether s is the optional enrichment stage.
func (s Step) Optional() bool { return s == Enrichment }

// Index returns s's position in the canonical order, or -1 for unknown
// steps. Used for ordering breadcrumbs and recommendations.
func (s Step) Index() int {
	for i, st := range pipeline {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Step) String() string { return string(s) }
