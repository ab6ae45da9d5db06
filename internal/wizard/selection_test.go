package wizard

import (
	"testing"

	"github.com/roadmaphq/roadmap/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestToggleAddAndRemove(t *testing.T) {
	sel := Selection{}

	sel = Toggle(sel, "g1", model.Horizon1Year)
	assert.True(t, sel.Contains("g1", model.Horizon1Year))

	sel = Toggle(sel, "g1", model.Horizon1Year)
	assert.False(t, sel.Contains("g1", model.Horizon1Year))
	assert.Empty(t, sel[model.Horizon1Year])
}

func TestToggleFullHorizonIsNoOp(t *testing.T) {
	sel := Selection{
		model.Horizon1Year: {"g1", "g2", "g3", "g4"},
	}

	next := Toggle(sel, "g5", model.Horizon1Year)
	assert.Equal(t, []string{"g1", "g2", "g3", "g4"}, next[model.Horizon1Year])

	// Removal still works at capacity.
	next = Toggle(sel, "g2", model.Horizon1Year)
	assert.Equal(t, []string{"g1", "g3", "g4"}, next[model.Horizon1Year])
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	sel := Selection{
		model.Horizon3Years: {"a", "b"},
	}

	_ = Toggle(sel, "c", model.Horizon3Years)
	assert.Equal(t, []string{"a", "b"}, sel[model.Horizon3Years])

	_ = Toggle(sel, "a", model.Horizon3Years)
	assert.Equal(t, []string{"a", "b"}, sel[model.Horizon3Years])
}

func TestReady(t *testing.T) {
	available := map[string]int{
		model.Horizon1Year:   5,
		model.Horizon3Years:  2,
		model.Horizon5Years:  0,
		model.Horizon10Years: 6,
	}

	sel := Selection{
		model.Horizon1Year:   {"a", "b", "c", "d"},
		model.Horizon3Years:  {"e", "f"},
		model.Horizon10Years: {"g", "h", "i", "j"},
	}
	assert.True(t, Ready(sel, available))

	// One pick short in the last horizon.
	sel[model.Horizon10Years] = []string{"g", "h", "i"}
	assert.False(t, Ready(sel, available))
}

func TestReadyEmptyCollection(t *testing.T) {
	// No goals anywhere: every horizon is vacuously complete.
	assert.True(t, Ready(Selection{}, map[string]int{}))
}

func TestSelectionIDsAndCount(t *testing.T) {
	sel := Selection{
		model.Horizon1Year:  {"a", "b"},
		model.Horizon5Years: {"c"},
	}

	assert.Equal(t, 3, sel.Count())
	ids := sel.IDs()
	assert.True(t, ids["a"])
	assert.True(t, ids["c"])
	assert.False(t, ids["z"])
}
