package machine

import (
	"fmt"

	"github.com/aretw0/vendsim/pkg/domain"
	"github.com/aretw0/vendsim/pkg/ports"
)

// New builds a fresh machine of the given kind, positioned at its
// initial state.
func New(kind domain.Kind) (ports.Machine, error) {
	switch kind {
	case domain.KindSingle:
		return newDFA(&singleDefinition, singleDispense), nil
	case domain.KindDual:
		return newDFA(&dualDefinition, dualDispense), nil
	case domain.KindNFA:
		return newNFA(&nfaDefinition), nil
	default:
		return nil, fmt.Errorf("kind %q: %w", kind, domain.ErrUnknownKind)
	}
}

// DefinitionFor returns the static definition of the given kind.
func DefinitionFor(kind domain.Kind) (domain.Definition, error) {
	switch kind {
	case domain.KindSingle:
		return singleDefinition, nil
	case domain.KindDual:
		return dualDefinition, nil
	case domain.KindNFA:
		return nfaDefinition, nil
	default:
		return domain.Definition{}, fmt.Errorf("kind %q: %w", kind, domain.ErrUnknownKind)
	}
}

// Definitions returns the three machine definitions in kind order.
func Definitions() []domain.Definition {
	return []domain.Definition{singleDefinition, dualDefinition, nfaDefinition}
}

// singleDispense: a product symbol fired from any accepting state
// returns to Q0 and vends. Note the full accepting set applies to the
// vitamin symbol too, even though CanBuyVitamin requires Q10; the
// single-path machine cannot tell RM35 holders apart once accepting.
func singleDispense(before, after domain.State, symbol domain.Symbol) domain.Product {
	if after != singleDefinition.Initial || !singleDefinition.IsAccepting(before) {
		return domain.ProductNone
	}
	switch symbol {
	case domain.SymbolEyeDrop:
		return domain.ProductEyeDrop
	case domain.SymbolVitamin:
		return domain.ProductVitamin
	}
	return domain.ProductNone
}

// dualDispense: each line vends only its own product, from its own
// ready state, on its own symbol. The other product's symbol is a
// self-loop and never vends.
func dualDispense(before, after domain.State, symbol domain.Symbol) domain.Product {
	if after != dualDefinition.Initial {
		return domain.ProductNone
	}
	switch {
	case symbol == domain.SymbolEyeDrop && domain.ContainsState(dualDefinition.AcceptingEyeDrop, before):
		return domain.ProductEyeDrop
	case symbol == domain.SymbolVitamin && domain.ContainsState(dualDefinition.AcceptingVitamin, before):
		return domain.ProductVitamin
	}
	return domain.ProductNone
}

// cloneRecords deep-copies a history so callers cannot alias the
// machine's internal slices.
func cloneRecords(recs []domain.Record) []domain.Record {
	if recs == nil {
		return nil
	}
	out := make([]domain.Record, len(recs))
	for i, r := range recs {
		out[i] = domain.Record{
			Before:    append([]domain.State(nil), r.Before...),
			Symbol:    r.Symbol,
			After:     append([]domain.State(nil), r.After...),
			Dispensed: r.Dispensed,
		}
	}
	return out
}
