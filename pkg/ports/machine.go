package ports

import "github.com/aretw0/vendsim/pkg/domain"

// Machine is the uniform interface over the three automaton flavors.
// Adapters write one call path against this set and branch on Kind
// only for labels and symbol choices.
//
// Operations are total over the declared alphabet: symbols outside it
// are a self-loop (deterministic machines) or leave the position
// unchanged (NFA). No operation fails, blocks, or performs I/O.
//
// A Machine instance is single-owner: it provides no internal locking
// and must be externally synchronized if shared (see session.Manager).
type Machine interface {
	// Kind returns the variant tag.
	Kind() domain.Kind

	// Definition returns the machine's static definition. The returned
	// value shares the immutable tables and must be treated read-only.
	Definition() domain.Definition

	// Transition consumes one symbol and returns the executed record,
	// including any dispensed product. The record is also appended to
	// the history log.
	Transition(symbol domain.Symbol) domain.Record

	// Reset restores the initial position and clears the history log.
	Reset()

	// Current returns the current position as a sorted state set
	// (a singleton for the deterministic machines).
	Current() []domain.State

	// Balance returns the balance of the current state; for the NFA,
	// the maximum balance across all currently-held states.
	Balance() int

	// IsAccepting reports whether a purchase is currently possible.
	IsAccepting() bool

	// CanBuyEyeDrop / CanBuyVitamin gate the product buttons.
	CanBuyEyeDrop() bool
	CanBuyVitamin() bool

	// History returns the append-only log of executed transitions.
	History() []domain.Record

	// Snapshot captures the runtime position for persistence.
	Snapshot() domain.Snapshot

	// Restore replaces the runtime position from a snapshot, after
	// re-establishing the machine's invariants (NFA positions are
	// re-closed under epsilon). The snapshot kind must match.
	Restore(snap domain.Snapshot) error
}
