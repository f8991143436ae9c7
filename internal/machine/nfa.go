package machine

import (
	"fmt"

	"github.com/aretw0/vendsim/pkg/domain"
)

// nfa runs the non-deterministic machine. The position is a set of
// states kept closed under epsilon edges at all times. Not safe for
// concurrent use; the session layer serializes access.
type nfa struct {
	def     *domain.Definition
	current map[domain.State]struct{}
	history []domain.Record
}

func newNFA(def *domain.Definition) *nfa {
	m := &nfa{def: def}
	m.current = m.closure(map[domain.State]struct{}{def.Initial: {}})
	return m
}

// closure returns the epsilon-closure of seed: every state reachable
// through zero or more epsilon edges. The visited set doubles as the
// result and as the guard against epsilon cycles.
func (m *nfa) closure(seed map[domain.State]struct{}) map[domain.State]struct{} {
	closed := make(map[domain.State]struct{}, len(seed))
	stack := make([]domain.State, 0, len(seed))
	for s := range seed {
		closed[s] = struct{}{}
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range m.def.Relation[s][domain.Epsilon] {
			if _, seen := closed[next]; seen {
				continue
			}
			closed[next] = struct{}{}
			stack = append(stack, next)
		}
	}
	return closed
}

// Transition consumes one symbol across every held state. An empty
// move union leaves the position unchanged (the symbol is absorbed,
// not rejected). If the fresh closure contains the dispense sink, the
// product named by the symbol is dispensed and the machine resets to
// the initial closure before the record is taken, so After reflects
// the state a caller will actually observe next.
func (m *nfa) Transition(symbol domain.Symbol) domain.Record {
	before := m.states()

	union := make(map[domain.State]struct{})
	for s := range m.current {
		for _, next := range m.def.Relation[s][symbol] {
			union[next] = struct{}{}
		}
	}

	var dispensed domain.Product
	if len(union) > 0 {
		m.current = m.closure(union)
		if _, hit := m.current[m.def.DispenseState]; hit {
			switch symbol {
			case domain.SymbolDispenseEyeDrop:
				dispensed = domain.ProductEyeDrop
			case domain.SymbolDispenseVitamin:
				dispensed = domain.ProductVitamin
			}
			m.current = m.closure(map[domain.State]struct{}{m.def.Initial: {}})
		}
	}

	rec := domain.Record{
		Before:    before,
		Symbol:    symbol,
		After:     m.states(),
		Dispensed: dispensed,
	}
	m.history = append(m.history, rec)
	return rec
}

func (m *nfa) Kind() domain.Kind { return m.def.Kind }

func (m *nfa) Definition() domain.Definition { return *m.def }

func (m *nfa) Reset() {
	m.current = m.closure(map[domain.State]struct{}{m.def.Initial: {}})
	m.history = nil
}

// states returns the held set as a fresh sorted slice.
func (m *nfa) states() []domain.State {
	out := make([]domain.State, 0, len(m.current))
	for s := range m.current {
		out = append(out, s)
	}
	domain.SortStates(out)
	return out
}

func (m *nfa) Current() []domain.State {
	return m.states()
}

// Balance reports the highest balance across the held states. Ready
// states carry no balance of their own, so a closure like {Q7,
// EYE_READY} still reads as RM35.
func (m *nfa) Balance() int {
	max := 0
	for s := range m.current {
		if b := m.def.Balance(s); b > max {
			max = b
		}
	}
	return max
}

func (m *nfa) IsAccepting() bool {
	for s := range m.current {
		if m.def.IsAccepting(s) {
			return true
		}
	}
	return false
}

func (m *nfa) CanBuyEyeDrop() bool {
	for s := range m.current {
		if domain.ContainsState(m.def.AcceptingEyeDrop, s) {
			return true
		}
	}
	return false
}

func (m *nfa) CanBuyVitamin() bool {
	for s := range m.current {
		if domain.ContainsState(m.def.AcceptingVitamin, s) {
			return true
		}
	}
	return false
}

func (m *nfa) History() []domain.Record {
	return cloneRecords(m.history)
}

func (m *nfa) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Kind:    m.def.Kind,
		Current: m.states(),
		History: cloneRecords(m.history),
	}
}

// Restore re-closes the snapshot's states, so a snapshot taken before
// a Definition change (or edited by hand) still lands on a valid
// closed position.
func (m *nfa) Restore(snap domain.Snapshot) error {
	if snap.Kind != m.def.Kind {
		return fmt.Errorf("restore %s machine from %s snapshot: %w", m.def.Kind, snap.Kind, domain.ErrKindMismatch)
	}
	if len(snap.Current) == 0 {
		return fmt.Errorf("snapshot holds no states: %w", domain.ErrUnknownState)
	}
	seed := make(map[domain.State]struct{}, len(snap.Current))
	for _, s := range snap.Current {
		if !m.def.HasState(s) {
			return fmt.Errorf("state %q: %w", s, domain.ErrUnknownState)
		}
		seed[s] = struct{}{}
	}
	m.current = m.closure(seed)
	m.history = cloneRecords(snap.History)
	return nil
}
