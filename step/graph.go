package step

import "fmt"

// prerequisites maps each step to the steps that must be completed before
// it becomes reachable. The mapping forms a DAG: ValidateGraph proves
// acyclicity at init and the package panics on a bad table, since the
// graph is static configuration and a cycle is a programming error.
var prerequisites = map[Step][]Step{
	Intake:     {},
	Processing: {Intake},
	Analysis:   {Processing},
	Features:   {Analysis},
	Templates:  {Features},
	Preview:    {Templates},
	Results:    {Preview},
	Enrichment: {Analysis},
	Completed:  {Results},
}

func init() {
	if err := ValidateGraph(); err != nil {
		panic(fmt.Sprintf("step: invalid prerequisite graph: %v", err))
	}
}

// Prerequisites returns the steps that must be completed before s is
// reachable. The returned slice is a copy.
func Prerequisites(s Step) []Step {
	pre := prerequisites[s]
	out := make([]Step, len(pre))
	copy(out, pre)
	return out
}

// Accessible reports whether s is reachable given the completed set:
// true iff every prerequisite of s is completed. Unknown steps are never
// accessible.
func Accessible(s Step, completed map[Step]bool) bool {
	if !s.Valid() {
		return false
	}
	for _, pre := range prerequisites[s] {
		if !completed[pre] {
			return false
		}
	}
	return true
}

// ValidateGraph checks that the prerequisite table references only known
// steps and contains no cycles.
func ValidateGraph() error {
	for s, pres := range prerequisites {
		if !s.Valid() {
			return fmt.Errorf("unknown step %q in graph", s)
		}
		for _, p := range pres {
			if !p.Valid() {
				return fmt.Errorf("step %q has unknown prerequisite %q", s, p)
			}
		}
	}

	// Three-color DFS cycle detection.
	const (
		white = iota
		gray
		black
	)
	color := make(map[Step]int, len(prerequisites))

	var visit func(Step) error
	visit = func(s Step) error {
		color[s] = gray
		for _, p := range prerequisites[s] {
			switch color[p] {
			case gray:
				return fmt.Errorf("cycle through %q and %q", s, p)
			case white:
				if err := visit(p); err != nil {
					return err
				}
			}
		}
		color[s] = black
		return nil
	}

	for s := range prerequisites {
		if color[s] == white {
			if err := visit(s); err != nil {
				return err
			}
		}
	}
	return nil
}
