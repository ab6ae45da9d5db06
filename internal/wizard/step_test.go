package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from Step
		to   Step
		want bool
	}{
		{"welcome to brainstorm", StepWelcome, StepBrainstorm, true},
		{"brainstorm to categorize", StepBrainstorm, StepCategorize, true},
		{"categorize to prioritize", StepCategorize, StepPrioritize, true},
		{"prioritize to dashboard", StepPrioritize, StepDashboard, true},
		{"categorize back to brainstorm", StepCategorize, StepBrainstorm, true},
		{"prioritize back to categorize", StepPrioritize, StepCategorize, true},
		{"dashboard back to prioritize", StepDashboard, StepPrioritize, true},
		{"no skipping welcome to categorize", StepWelcome, StepCategorize, false},
		{"no skipping brainstorm to dashboard", StepBrainstorm, StepDashboard, false},
		{"no jumping back two phases", StepDashboard, StepCategorize, false},
		{"no self transition", StepCategorize, StepCategorize, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestBackward(t *testing.T) {
	assert.True(t, Backward(StepPrioritize, StepCategorize))
	assert.True(t, Backward(StepDashboard, StepPrioritize))
	assert.False(t, Backward(StepCategorize, StepPrioritize))
	// Not a permitted transition at all.
	assert.False(t, Backward(StepDashboard, StepBrainstorm))
}

func TestFromInt(t *testing.T) {
	assert.Equal(t, StepWelcome, FromInt(0))
	assert.Equal(t, StepDashboard, FromInt(4))
	// Corrupt values restart the flow.
	assert.Equal(t, StepWelcome, FromInt(-1))
	assert.Equal(t, StepWelcome, FromInt(99))
}

func TestParseStep(t *testing.T) {
	step, err := ParseStep("prioritize")
	require.NoError(t, err)
	assert.Equal(t, StepPrioritize, step)

	_, err = ParseStep("unknown")
	assert.Error(t, err)
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "welcome", StepWelcome.String())
	assert.Equal(t, "dashboard", StepDashboard.String())
	assert.Equal(t, "step(7)", Step(7).String())
}
