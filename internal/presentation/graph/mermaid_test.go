package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/vendsim/internal/machine"
	"github.com/aretw0/vendsim/pkg/domain"
)

func TestGenerateMermaidSingle(t *testing.T) {
	def, err := machine.DefinitionFor(domain.KindSingle)
	require.NoError(t, err)

	out := GenerateMermaid(def, nil)

	assert.True(t, strings.HasPrefix(out, "stateDiagram-v2\n"))
	assert.Contains(t, out, "[*] --> Q0")
	assert.Contains(t, out, "Q0 --> Q1: RM5")
	assert.Contains(t, out, "Q7: Q7 (Eye Drop Ready)")
	assert.Contains(t, out, "Q7 --> Q0: e, v")
	assert.Contains(t, out, "class Q10 accepting")
	assert.NotContains(t, out, "Q0 --> Q0", "self-loops are omitted")
	assert.NotContains(t, out, "%% Overlay", "no overlay block without an overlay")
}

func TestGenerateMermaidNFAEpsilon(t *testing.T) {
	def, err := machine.DefinitionFor(domain.KindNFA)
	require.NoError(t, err)

	out := GenerateMermaid(def, nil)

	assert.Contains(t, out, "Q7 --> EYE_READY: ε")
	assert.Contains(t, out, "Q10 --> VIT_READY: ε")
	assert.Contains(t, out, "EYE_READY --> DISPENSE: dispense_e")
	assert.Contains(t, out, "DISPENSE --> Q0: ε")
	assert.Contains(t, out, "class EYE_READY accepting")
}

func TestGenerateMermaidOverlay(t *testing.T) {
	def, err := machine.DefinitionFor(domain.KindSingle)
	require.NoError(t, err)

	overlay := &Overlay{
		VisitedStates: []domain.State{"Q0", "Q2", "Q0"},
		CurrentStates: []domain.State{"Q4"},
	}
	out := GenerateMermaid(def, overlay)

	assert.Contains(t, out, "class Q2 visited")
	assert.Contains(t, out, "class Q4 current")
	assert.Equal(t, 1, strings.Count(out, "class Q0 visited"), "visited states are deduplicated")
}

func TestOverlayFromSnapshot(t *testing.T) {
	snap := domain.Snapshot{
		Kind:    domain.KindNFA,
		Current: []domain.State{"EYE_READY", "Q7"},
		History: []domain.Record{
			{Before: []domain.State{"Q0"}, Symbol: domain.SymbolRM20, After: []domain.State{"Q4"}},
		},
	}
	o := OverlayFromSnapshot(snap)
	assert.Equal(t, snap.Current, o.CurrentStates)
	assert.Equal(t, []domain.State{"Q0", "Q4"}, o.VisitedStates)
}
