package wizard

import "github.com/roadmaphq/roadmap/internal/model"

// Selection maps a time horizon to the goal ids picked as top goals
// for that horizon during the prioritize phase.
type Selection map[string][]string

// Count returns the total number of selected goal ids across horizons.
func (s Selection) Count() int {
	n := 0
	for _, ids := range s {
		n += len(ids)
	}
	return n
}

// IDs returns the set of all selected goal ids.
func (s Selection) IDs() map[string]bool {
	ids := make(map[string]bool, s.Count())
	for _, list := range s {
		for _, id := range list {
			ids[id] = true
		}
	}
	return ids
}

// Contains reports whether goalID is selected under horizon.
func (s Selection) Contains(goalID, horizon string) bool {
	for _, id := range s[horizon] {
		if id == goalID {
			return true
		}
	}
	return false
}

// Toggle returns a new selection with goalID removed from horizon if
// present, or added if the horizon still has room. A horizon already
// holding the maximum is left unchanged rather than silently evicting
// an earlier pick.
func Toggle(s Selection, goalID, horizon string) Selection {
	next := make(Selection, len(s))
	for h, ids := range s {
		next[h] = append([]string(nil), ids...)
	}

	current := next[horizon]
	for i, id := range current {
		if id == goalID {
			next[horizon] = append(current[:i:i], current[i+1:]...)
			return next
		}
	}

	if len(current) < model.MaxTopGoalsPerHorizon {
		next[horizon] = append(current, goalID)
	}
	return next
}

// Ready reports whether the selection is complete: for every one of the
// four horizons the number of picks equals min(4, goals available in
// that horizon). A horizon with no goals is vacuously complete.
func Ready(s Selection, availableByHorizon map[string]int) bool {
	for _, horizon := range model.TimeHorizons {
		want := availableByHorizon[horizon]
		if want > model.MaxTopGoalsPerHorizon {
			want = model.MaxTopGoalsPerHorizon
		}
		if len(s[horizon]) != want {
			return false
		}
	}
	return true
}
