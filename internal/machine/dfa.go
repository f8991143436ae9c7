package machine

import (
	"fmt"

	"github.com/aretw0/vendsim/pkg/domain"
)

// dispenseRule decides whether one deterministic transition dispensed a
// product. The two DFAs differ only in this rule, not in the runtime.
type dispenseRule func(before, after domain.State, symbol domain.Symbol) domain.Product

// dfa runs a deterministic machine over a shared read-only Definition.
// It holds exactly one current state. Not safe for concurrent use; the
// session layer serializes access.
type dfa struct {
	def      *domain.Definition
	dispense dispenseRule
	current  domain.State
	history  []domain.Record
}

func newDFA(def *domain.Definition, rule dispenseRule) *dfa {
	return &dfa{def: def, dispense: rule, current: def.Initial}
}

func (m *dfa) Kind() domain.Kind { return m.def.Kind }

func (m *dfa) Definition() domain.Definition { return *m.def }

// Transition consumes one symbol. Delta is total over the alphabet, so
// the self-loop fallback only fires for symbols outside it; those are
// absorbed without effect rather than rejected.
func (m *dfa) Transition(symbol domain.Symbol) domain.Record {
	before := m.current
	after, ok := m.def.Delta[before][symbol]
	if !ok {
		after = before
	}
	m.current = after

	rec := domain.Record{
		Before:    []domain.State{before},
		Symbol:    symbol,
		After:     []domain.State{after},
		Dispensed: m.dispense(before, after, symbol),
	}
	m.history = append(m.history, rec)
	return rec
}

func (m *dfa) Reset() {
	m.current = m.def.Initial
	m.history = nil
}

func (m *dfa) Current() []domain.State {
	return []domain.State{m.current}
}

func (m *dfa) Balance() int {
	return m.def.Balance(m.current)
}

func (m *dfa) IsAccepting() bool {
	return m.def.IsAccepting(m.current)
}

func (m *dfa) CanBuyEyeDrop() bool {
	return domain.ContainsState(m.def.AcceptingEyeDrop, m.current)
}

func (m *dfa) CanBuyVitamin() bool {
	return domain.ContainsState(m.def.AcceptingVitamin, m.current)
}

func (m *dfa) History() []domain.Record {
	return cloneRecords(m.history)
}

func (m *dfa) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Kind:    m.def.Kind,
		Current: []domain.State{m.current},
		History: cloneRecords(m.history),
	}
}

func (m *dfa) Restore(snap domain.Snapshot) error {
	if snap.Kind != m.def.Kind {
		return fmt.Errorf("restore %s machine from %s snapshot: %w", m.def.Kind, snap.Kind, domain.ErrKindMismatch)
	}
	if len(snap.Current) != 1 {
		return fmt.Errorf("deterministic snapshot carries %d states: %w", len(snap.Current), domain.ErrUnknownState)
	}
	s := snap.Current[0]
	if !m.def.HasState(s) {
		return fmt.Errorf("state %q: %w", s, domain.ErrUnknownState)
	}
	m.current = s
	m.history = cloneRecords(snap.History)
	return nil
}
