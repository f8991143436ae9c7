package vendsim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/vendsim"
	"github.com/aretw0/vendsim/pkg/domain"
)

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := vendsim.New(domain.Kind("turing"))
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestFacadePassthrough(t *testing.T) {
	m, err := vendsim.New(domain.KindDual)
	require.NoError(t, err)

	assert.Equal(t, domain.KindDual, m.Kind())
	assert.Equal(t, "Dual-Path DFA", m.Definition().Name)

	m.Transition(domain.SymbolSelectEyeDrop)
	m.Transition(domain.SymbolRM20)
	m.Transition(domain.SymbolRM10)
	m.Transition(domain.SymbolRM5)

	assert.Equal(t, 35, m.Balance())
	assert.True(t, m.IsAccepting())
	assert.True(t, m.CanBuyEyeDrop())
	assert.False(t, m.CanBuyVitamin())

	snap := m.Snapshot()
	assert.Equal(t, []domain.State{"E7"}, snap.Current)
	assert.Len(t, snap.History, 4)

	fresh, err := vendsim.New(domain.KindDual)
	require.NoError(t, err)
	require.NoError(t, fresh.Restore(snap))
	assert.Equal(t, 35, fresh.Balance())

	m.Reset()
	assert.Equal(t, []domain.State{"S0"}, m.Current())
	assert.Empty(t, m.History())
}

func TestLifecycleHooks(t *testing.T) {
	var transitions []domain.TransitionEvent
	var dispenses []domain.DispenseEvent

	m, err := vendsim.New(domain.KindNFA, vendsim.WithLifecycleHooks(domain.LifecycleHooks{
		OnTransition: func(ev domain.TransitionEvent) { transitions = append(transitions, ev) },
		OnDispense:   func(ev domain.DispenseEvent) { dispenses = append(dispenses, ev) },
	}))
	require.NoError(t, err)

	m.Transition(domain.SymbolRM20)
	m.Transition(domain.SymbolRM20)
	m.Transition(domain.SymbolRM10)
	m.Transition(domain.SymbolDispenseVitamin)

	require.Len(t, transitions, 4)
	assert.Equal(t, domain.KindNFA, transitions[0].Kind)
	assert.Equal(t, domain.SymbolRM20, transitions[0].Symbol)

	require.Len(t, dispenses, 1)
	assert.Equal(t, domain.ProductVitamin, dispenses[0].Product)
	assert.Equal(t, domain.SymbolDispenseVitamin, dispenses[0].Symbol)
}

func TestNilHooksAreSkipped(t *testing.T) {
	m, err := vendsim.New(domain.KindSingle, vendsim.WithLifecycleHooks(domain.LifecycleHooks{}))
	require.NoError(t, err)

	m.Transition(domain.SymbolRM20)
	m.Transition(domain.SymbolRM20)
	rec := m.Transition(domain.SymbolEyeDrop)
	assert.Equal(t, domain.ProductEyeDrop, rec.Dispensed)
}

func TestDefinitionsExposed(t *testing.T) {
	defs := vendsim.Definitions()
	require.Len(t, defs, 3)

	for _, kind := range vendsim.Kinds() {
		def, err := vendsim.DefinitionFor(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, def.Kind)
		assert.NotEmpty(t, def.States)
		assert.NotEmpty(t, def.Alphabet)
	}
}
