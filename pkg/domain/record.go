package domain

// Record captures one executed transition. It doubles as the result
// value of a Transition call and as a history entry.
//
// Before and After are sorted state sets. For the deterministic
// machines they are always singletons; the slice form keeps the
// presentation layer on a single call path across machine kinds.
//
// For the NFA, After reflects the position after any auto-reset baked
// into the dispense rule, matching what the machine actually holds
// when the call returns.
type Record struct {
	Before    []State `json:"before"`
	Symbol    Symbol  `json:"symbol"`
	After     []State `json:"after"`
	Dispensed Product `json:"dispensed,omitempty"`
}

// Snapshot is the serializable runtime position of a machine instance:
// the variant tag, the current position, and the transition log.
// It carries no definition data; definitions are compile-time constants.
type Snapshot struct {
	Kind    Kind     `json:"kind"`
	Current []State  `json:"current"`
	History []Record `json:"history,omitempty"`
}
