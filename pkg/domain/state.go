package domain

import "sort"

// State identifies a single automaton state (e.g. "Q7", "E3", "EYE_READY").
// States are opaque and compared by equality.
type State string

// StateInfo holds the static metadata attached to a state.
// It is looked up by state identifier and never mutated at runtime.
type StateInfo struct {
	// Balance is the cumulative inserted value this state represents (RM).
	Balance int `json:"balance"`

	// Label is a display string. It has no influence on machine semantics.
	Label string `json:"label"`
}

// SortStates orders states lexicographically by name, in place, and
// returns the slice. This matches the display convention of the
// machines: a set-valued position is always presented sorted.
func SortStates(states []State) []State {
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

// ContainsState reports whether states includes s.
func ContainsState(states []State, s State) bool {
	for _, c := range states {
		if c == s {
			return true
		}
	}
	return false
}
