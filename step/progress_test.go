package step_test

import (
	"math/rand/v2"
	"testing"

	"github.com/guidepost/guidepost/step"
)

func completedSet(steps ...step.Step) map[step.Step]bool {
	m := make(map[step.Step]bool, len(steps))
	for _, s := range steps {
		m[s] = true
	}
	return m
}

func TestCompletion_Empty(t *testing.T) {
	got := step.Completion(step.Progress{Completed: completedSet()})
	if got != 0 {
		t.Errorf("Completion(empty) = %v, want 0", got)
	}
}

func TestCompletion_AllMainStepsCapBase(t *testing.T) {
	got := step.Completion(step.Progress{Completed: completedSet(step.MainSteps()...)})
	if got != 80 {
		t.Errorf("Completion(all main) = %v, want 80", got)
	}
}

func TestCompletion_EnrichmentAndFeatureBonuses(t *testing.T) {
	tests := []struct {
		name     string
		progress step.Progress
		want     float64
	}{
		{
			"enrichment bonus",
			step.Progress{Completed: completedSet(append(step.MainSteps(), step.Enrichment)...)},
			90,
		},
		{
			"feature bonus",
			step.Progress{Completed: completedSet(), EnabledFeatures: 3},
			6,
		},
		{
			"feature bonus capped",
			step.Progress{Completed: completedSet(), EnabledFeatures: 25},
			10,
		},
		{
			"overall ceiling",
			step.Progress{
				Completed:       completedSet(append(step.MainSteps(), step.Enrichment)...),
				EnabledFeatures: 25,
			},
			100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := step.Completion(tt.progress); got != tt.want {
				t.Errorf("Completion() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Two main steps done with analysis at 75% must land strictly between the
// two-step and three-step values (~22.9 and ~34.3).
func TestCompletion_PartialCurrentStep(t *testing.T) {
	got := step.Completion(step.Progress{
		Completed:      completedSet(step.Intake, step.Processing),
		Current:        step.Analysis,
		CurrentPercent: 75,
	})

	lo := step.Completion(step.Progress{Completed: completedSet(step.Intake, step.Processing)})
	hi := step.Completion(step.Progress{Completed: completedSet(step.Intake, step.Processing, step.Analysis)})

	if got <= lo || got >= hi {
		t.Errorf("Completion(2 done + analysis@75%%) = %v, want strictly in (%v, %v)", got, lo, hi)
	}
}

func TestCompletion_IgnoresPartialForNonMainOrCompleted(t *testing.T) {
	base := step.Completion(step.Progress{Completed: completedSet(step.Intake)})

	// Progress on an already-completed step adds nothing.
	got := step.Completion(step.Progress{
		Completed:      completedSet(step.Intake),
		Current:        step.Intake,
		CurrentPercent: 50,
	})
	if got != base {
		t.Errorf("partial credit applied to completed step: %v != %v", got, base)
	}

	// Progress on the optional stage adds nothing to the main weight.
	got = step.Completion(step.Progress{
		Completed:      completedSet(step.Intake),
		Current:        step.Enrichment,
		CurrentPercent: 50,
	})
	if got != base {
		t.Errorf("partial credit applied to optional step: %v != %v", got, base)
	}
}

// TestCompletion_Monotone checks that completing an extra step or raising
// the in-progress percent never decreases the result.
func TestCompletion_Monotone(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))
	all := step.Pipeline()

	for range 300 {
		completed := make(map[step.Step]bool)
		for _, s := range all {
			if rng.IntN(2) == 0 {
				completed[s] = true
			}
		}
		current := all[rng.IntN(len(all))]
		pct := rng.Float64() * 100

		base := step.Completion(step.Progress{
			Completed:      completed,
			Current:        current,
			CurrentPercent: pct,
		})

		// Raise the in-progress percent.
		higher := step.Completion(step.Progress{
			Completed:      completed,
			Current:        current,
			CurrentPercent: 100,
		})
		if higher < base {
			t.Fatalf("raising percent decreased completion: %v -> %v", base, higher)
		}

		// Complete one more step.
		for _, s := range all {
			if completed[s] {
				continue
			}
			more := make(map[step.Step]bool, len(completed)+1)
			for k := range completed {
				more[k] = true
			}
			more[s] = true
			grown := step.Completion(step.Progress{
				Completed:      more,
				Current:        current,
				CurrentPercent: pct,
			})
			if grown < base {
				t.Fatalf("completing %q decreased completion: %v -> %v", s, base, grown)
			}
		}
	}
}
