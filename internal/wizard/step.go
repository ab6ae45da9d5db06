// Package wizard holds the pure rules of the goal-setting flow: the
// step state machine and the top-goal selection bookkeeping. It has no
// storage or transport dependencies so the rules are trivially testable.
package wizard

import "fmt"

// Step is a named position in the wizard. The integer value is the
// persisted encoding; control flow always goes through the transition
// table, never through integer comparisons.
type Step int

const (
	StepWelcome Step = iota
	StepBrainstorm
	StepCategorize
	StepPrioritize
	StepDashboard
)

var stepNames = map[Step]string{
	StepWelcome:    "welcome",
	StepBrainstorm: "brainstorm",
	StepCategorize: "categorize",
	StepPrioritize: "prioritize",
	StepDashboard:  "dashboard",
}

func (s Step) String() string {
	name, ok := stepNames[s]
	if !ok {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return name
}

// Valid reports whether s is one of the five wizard steps.
func (s Step) Valid() bool {
	_, ok := stepNames[s]
	return ok
}

// FromInt converts a persisted step value. Out-of-range values map to
// StepWelcome so a corrupt row restarts the flow instead of crashing it.
func FromInt(n int) Step {
	s := Step(n)
	if !s.Valid() {
		return StepWelcome
	}
	return s
}

// ParseStep converts a step name as used on the wire.
func ParseStep(name string) (Step, error) {
	for s, n := range stepNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", name)
}

// transitions is the explicit table of permitted moves. Forward moves
// carry guards enforced by the service layer; backward moves are always
// permitted so users can revise earlier phases.
var transitions = map[Step][]Step{
	StepWelcome:    {StepBrainstorm},
	StepBrainstorm: {StepCategorize},
	StepCategorize: {StepPrioritize, StepBrainstorm},
	StepPrioritize: {StepDashboard, StepCategorize},
	StepDashboard:  {StepPrioritize},
}

// CanTransition reports whether the state machine permits moving from
// one step to another. Guards (all goals categorized, selection ready)
// are checked separately; this is only the shape of the graph.
func CanTransition(from, to Step) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Backward reports whether a permitted transition moves the user to an
// earlier phase. Backward moves never require a guard.
func Backward(from, to Step) bool {
	return CanTransition(from, to) && to < from
}
