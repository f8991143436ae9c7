package domain

// Definition is the complete static description of one automaton.
// Definitions are built once as package-level values and shared
// read-only; nothing mutates a Definition after construction.
//
// Exactly one of Delta (deterministic) or Relation (non-deterministic)
// is populated, according to Deterministic.
type Definition struct {
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description"`

	States   []State  `json:"states"`
	Alphabet []Symbol `json:"alphabet"`
	Initial  State    `json:"initial"`

	// Accepting is the set of states in which a purchase is possible.
	Accepting []State `json:"accepting"`

	// AcceptingEyeDrop / AcceptingVitamin gate the per-product buy
	// checks. For the single-path machine these deliberately differ
	// from the dispense rule (see the transition semantics).
	AcceptingEyeDrop []State `json:"accepting_eye_drop"`
	AcceptingVitamin []State `json:"accepting_vitamin"`

	// Info maps every state to its static balance/label metadata.
	Info map[State]StateInfo `json:"info"`

	Deterministic bool `json:"deterministic"`

	// Delta is the total transition function of a deterministic
	// machine: every state has an entry for every alphabet symbol.
	Delta map[State]map[Symbol]State `json:"delta,omitempty"`

	// Relation is the transition relation of the NFA. The Epsilon
	// pseudo-symbol maps a state to the states reachable without
	// consuming input. A missing (state, symbol) entry means no move.
	Relation map[State]map[Symbol][]State `json:"relation,omitempty"`

	// DispenseState is the NFA's sink marker: its presence in a
	// freshly computed closure signals a dispense. Empty for the
	// deterministic machines.
	DispenseState State `json:"dispense_state,omitempty"`
}

// IsAccepting reports whether s belongs to the accepting set.
func (d Definition) IsAccepting(s State) bool {
	return ContainsState(d.Accepting, s)
}

// Balance returns the balance metadata for s (0 for unknown states,
// mirroring the defensive lookup of the reference tables).
func (d Definition) Balance(s State) int {
	return d.Info[s].Balance
}

// Label returns the display label for s.
func (d Definition) Label(s State) string {
	return d.Info[s].Label
}

// HasState reports whether s is part of this machine's state set.
func (d Definition) HasState(s State) bool {
	return ContainsState(d.States, s)
}
