package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/vendsim/pkg/domain"
)

func TestDualDeltaIsTotal(t *testing.T) {
	for _, s := range dualDefinition.States {
		row, ok := dualDefinition.Delta[s]
		require.True(t, ok, "state %s has no row", s)
		for _, sym := range dualDefinition.Alphabet {
			next, ok := row[sym]
			require.True(t, ok, "state %s misses symbol %s", s, sym)
			assert.True(t, dualDefinition.HasState(next), "state %s + %s leads to unknown %s", s, sym, next)
		}
	}
}

func TestDualMoneyIgnoredBeforeSelection(t *testing.T) {
	m := newDFA(&dualDefinition, dualDispense)
	rec := feed(t, m, rm20, rm10, vit, eye)
	assert.Equal(t, []domain.State{"S0"}, rec.After, "everything self-loops until a product is selected")
	assert.Equal(t, 0, m.Balance())
}

// Selecting a line credits nothing: both line starts carry balance 0,
// so money inserted afterwards accounts for the full tier.
func TestDualSelectionCreditsNothing(t *testing.T) {
	m := newDFA(&dualDefinition, dualDispense)
	rec := m.Transition(selE)
	assert.Equal(t, []domain.State{"E0"}, rec.After)
	assert.Equal(t, 0, m.Balance())

	m2 := newDFA(&dualDefinition, dualDispense)
	rec = m2.Transition(selV)
	assert.Equal(t, []domain.State{"V0"}, rec.After)
	assert.Equal(t, 0, m2.Balance())

	// The tier-switch scenario hangs on this: RM20 after selection
	// must land on the other line's balance-20 state, not above it.
	feed(t, m, rm20)
	rec = m.Transition(selV)
	assert.Equal(t, []domain.State{"V4"}, rec.After)
	assert.Equal(t, 20, m.Balance())
}

func TestDualEyeDropPath(t *testing.T) {
	m := newDFA(&dualDefinition, dualDispense)
	feed(t, m, selE, rm20, rm10)
	assert.Equal(t, []domain.State{"E6"}, m.Current())
	assert.Equal(t, 30, m.Balance())
	assert.False(t, m.IsAccepting())

	feed(t, m, rm5)
	assert.Equal(t, []domain.State{"E7"}, m.Current())
	assert.True(t, m.CanBuyEyeDrop())
	assert.False(t, m.CanBuyVitamin())

	rec := m.Transition(eye)
	assert.Equal(t, domain.ProductEyeDrop, rec.Dispensed)
	assert.Equal(t, []domain.State{"S0"}, rec.After)
}

func TestDualVitaminPath(t *testing.T) {
	m := newDFA(&dualDefinition, dualDispense)
	feed(t, m, selV, rm20, rm20, rm10)
	assert.Equal(t, []domain.State{"V10"}, m.Current())
	assert.Equal(t, 50, m.Balance())
	assert.False(t, m.CanBuyEyeDrop())
	assert.True(t, m.CanBuyVitamin())

	rec := m.Transition(vit)
	assert.Equal(t, domain.ProductVitamin, rec.Dispensed)
	assert.Equal(t, []domain.State{"S0"}, rec.After)
}

// The other product's symbol never vends on a line, even when the line
// is at its ready state. It is a self-loop, not a transfer.
func TestDualWrongProductSymbolSelfLoops(t *testing.T) {
	m := newDFA(&dualDefinition, dualDispense)
	feed(t, m, selE, rm20, rm10, rm5) // E7

	rec := m.Transition(vit)
	assert.Equal(t, []domain.State{"E7"}, rec.After)
	assert.Equal(t, domain.ProductNone, rec.Dispensed)

	m2 := newDFA(&dualDefinition, dualDispense)
	feed(t, m2, selV, rm20, rm20, rm10) // V10
	rec = m2.Transition(eye)
	assert.Equal(t, []domain.State{"V10"}, rec.After)
	assert.Equal(t, domain.ProductNone, rec.Dispensed)
}

func TestDualSwitchKeepsBalanceTier(t *testing.T) {
	tests := []struct {
		name  string
		setup []domain.Symbol
		sym   domain.Symbol
		want  domain.State
	}{
		{"eye to vitamin same tier", []domain.Symbol{selE, rm20}, selV, "V4"},
		{"vitamin to eye same tier", []domain.Symbol{selV, rm10, rm5}, selE, "E3"},
		{"eye ready to vitamin tier 7", []domain.Symbol{selE, rm20, rm10, rm5}, selV, "V7"},
		{"rich vitamin clamps to eye ready", []domain.Symbol{selV, rm20, rm20}, selE, "E7"},
		{"vitamin ready clamps to eye ready", []domain.Symbol{selV, rm20, rm20, rm10}, selE, "E7"},
		{"reselect same line is a no-op", []domain.Symbol{selE, rm10}, selE, "E2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newDFA(&dualDefinition, dualDispense)
			feed(t, m, tt.setup...)
			rec := m.Transition(tt.sym)
			assert.Equal(t, []domain.State{tt.want}, rec.After)
			assert.Equal(t, domain.ProductNone, rec.Dispensed, "switching lines never vends")
		})
	}
}

func TestDualOverpayCaps(t *testing.T) {
	m := newDFA(&dualDefinition, dualDispense)
	feed(t, m, selE, rm20, rm20, rm20)
	assert.Equal(t, []domain.State{"E7"}, m.Current())
	assert.Equal(t, 35, m.Balance())
}

func TestDualSnapshotRestore(t *testing.T) {
	m := newDFA(&dualDefinition, dualDispense)
	feed(t, m, selV, rm20, rm10)
	snap := m.Snapshot()

	fresh := newDFA(&dualDefinition, dualDispense)
	require.NoError(t, fresh.Restore(snap))
	assert.Equal(t, []domain.State{"V6"}, fresh.Current())
	assert.Equal(t, 30, fresh.Balance())
	assert.Len(t, fresh.History(), 3)
}
