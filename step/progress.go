package step

// mainWeight is the share of the completion percentage carried by the
// required pipeline; the remainder comes from enrichment and feature
// bonuses.
const (
	mainWeight        = 80.0
	enrichmentBonus   = 10.0
	featureBonus      = 2.0
	featureBonusCap   = 10.0
	completionCeiling = 100.0
)

// Progress is the input to the completion calculation, extracted from a
// session snapshot.
type Progress struct {
	// Completed is the set of fully completed steps.
	Completed map[Step]bool
	// Current is the step the session is parked on.
	Current Step
	// CurrentPercent is the in-progress completion of Current, 0..100.
	// Ignored when Current is already in Completed or is not a main step.
	CurrentPercent float64
	// EnabledFeatures is the number of enabled feature flags.
	EnabledFeatures int
}

// Completion computes the overall session completion percentage:
// completed main steps weighted to 80 points, partial credit for the
// main step in progress, a flat bonus for the optional enrichment stage,
// and a capped per-feature bonus. Clamped to [0,100].
//
// The result is monotone: completing a step or raising the in-progress
// percent never lowers it.
func Completion(p Progress) float64 {
	perStep := mainWeight / float64(len(mainSteps))

	var doneMain int
	for _, m := range mainSteps {
		if p.Completed[m] {
			doneMain++
		}
	}
	pct := float64(doneMain) * perStep

	// Partial credit for the step being worked on right now.
	if p.Current.Required() && !p.Completed[p.Current] {
		frac := p.CurrentPercent / 100
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		pct += frac * perStep
	}

	if p.Completed[Enrichment] {
		pct += enrichmentBonus
	}

	fb := featureBonus * float64(p.EnabledFeatures)
	if fb > featureBonusCap {
		fb = featureBonusCap
	}
	pct += fb

	if pct > completionCeiling {
		pct = completionCeiling
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}
