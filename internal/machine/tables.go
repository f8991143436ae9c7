package machine

import "github.com/aretw0/vendsim/pkg/domain"

// Short hands keep the transition tables readable.
const (
	rm5  = domain.SymbolRM5
	rm10 = domain.SymbolRM10
	rm20 = domain.SymbolRM20
	eye  = domain.SymbolEyeDrop
	vit  = domain.SymbolVitamin
	selE = domain.SymbolSelectEyeDrop
	selV = domain.SymbolSelectVitamin
	dspE = domain.SymbolDispenseEyeDrop
	dspV = domain.SymbolDispenseVitamin
	eps  = domain.Epsilon
)

type drow = map[domain.Symbol]domain.State
type nrow = map[domain.Symbol][]domain.State

// singleDefinition is the single-path DFA: one shared state line,
// Eye Drop affordable from Q7 (RM35), Vitamin from Q10 (RM50).
//
// Both product symbols return any accepting state to Q0, so the
// accepting region does not itself distinguish which product is
// affordable; CanBuyVitamin carries the RM50 restriction instead.
// That asymmetry is part of the machine's contract.
var singleDefinition = domain.Definition{
	Kind:        domain.KindSingle,
	Name:        "Single-Path DFA",
	Description: "Single state path shared by both products",
	States: []domain.State{
		"Q0", "Q1", "Q2", "Q3", "Q4", "Q5", "Q6", "Q7", "Q8", "Q9", "Q10",
	},
	Alphabet:         []domain.Symbol{rm5, rm10, rm20, eye, vit},
	Initial:          "Q0",
	Accepting:        []domain.State{"Q7", "Q8", "Q9", "Q10"},
	AcceptingEyeDrop: []domain.State{"Q7", "Q8", "Q9", "Q10"},
	AcceptingVitamin: []domain.State{"Q10"},
	Info: map[domain.State]domain.StateInfo{
		"Q0":  {Balance: 0, Label: "Initial"},
		"Q1":  {Balance: 5, Label: "RM5"},
		"Q2":  {Balance: 10, Label: "RM10"},
		"Q3":  {Balance: 15, Label: "RM15"},
		"Q4":  {Balance: 20, Label: "RM20"},
		"Q5":  {Balance: 25, Label: "RM25"},
		"Q6":  {Balance: 30, Label: "RM30"},
		"Q7":  {Balance: 35, Label: "Eye Drop Ready"},
		"Q8":  {Balance: 40, Label: "Eye Drop Ready"},
		"Q9":  {Balance: 45, Label: "Eye Drop Ready"},
		"Q10": {Balance: 50, Label: "Both Ready"},
	},
	Deterministic: true,
	Delta: map[domain.State]drow{
		"Q0":  {rm5: "Q1", rm10: "Q2", rm20: "Q4", eye: "Q0", vit: "Q0"},
		"Q1":  {rm5: "Q2", rm10: "Q3", rm20: "Q5", eye: "Q1", vit: "Q1"},
		"Q2":  {rm5: "Q3", rm10: "Q4", rm20: "Q6", eye: "Q2", vit: "Q2"},
		"Q3":  {rm5: "Q4", rm10: "Q5", rm20: "Q7", eye: "Q3", vit: "Q3"},
		"Q4":  {rm5: "Q5", rm10: "Q6", rm20: "Q8", eye: "Q4", vit: "Q4"},
		"Q5":  {rm5: "Q6", rm10: "Q7", rm20: "Q9", eye: "Q5", vit: "Q5"},
		"Q6":  {rm5: "Q7", rm10: "Q8", rm20: "Q10", eye: "Q6", vit: "Q6"},
		"Q7":  {rm5: "Q8", rm10: "Q9", rm20: "Q10", eye: "Q0", vit: "Q0"},
		"Q8":  {rm5: "Q9", rm10: "Q10", rm20: "Q10", eye: "Q0", vit: "Q0"},
		"Q9":  {rm5: "Q10", rm10: "Q10", rm20: "Q10", eye: "Q0", vit: "Q0"},
		"Q10": {rm5: "Q10", rm10: "Q10", rm20: "Q10", eye: "Q0", vit: "Q0"},
	},
}

// dualDefinition is the dual-path DFA: S0 selects a product first,
// then money advances along that product's own line (E0..E7 for Eye
// Drop at RM35, V0..V10 for Vitamin at RM50). Selection itself credits
// nothing, so each line starts at a zero-balance state and En/Vn carry
// balance 5n. Selecting the other product mid-insertion jumps to the
// other line at the same balance tier instead of resetting to zero.
var dualDefinition = domain.Definition{
	Kind:        domain.KindDual,
	Name:        "Dual-Path DFA",
	Description: "Separate state paths for Eye Drop and Vitamin",
	States: []domain.State{
		"S0",
		"E0", "E1", "E2", "E3", "E4", "E5", "E6", "E7",
		"V0", "V1", "V2", "V3", "V4", "V5", "V6", "V7", "V8", "V9", "V10",
	},
	Alphabet:         []domain.Symbol{rm5, rm10, rm20, eye, vit, selE, selV},
	Initial:          "S0",
	Accepting:        []domain.State{"E7", "V10"},
	AcceptingEyeDrop: []domain.State{"E7"},
	AcceptingVitamin: []domain.State{"V10"},
	Info: map[domain.State]domain.StateInfo{
		"S0":  {Balance: 0, Label: "Select Product"},
		"E0":  {Balance: 0, Label: "Eye Drop: RM0"},
		"E1":  {Balance: 5, Label: "Eye Drop: RM5"},
		"E2":  {Balance: 10, Label: "Eye Drop: RM10"},
		"E3":  {Balance: 15, Label: "Eye Drop: RM15"},
		"E4":  {Balance: 20, Label: "Eye Drop: RM20"},
		"E5":  {Balance: 25, Label: "Eye Drop: RM25"},
		"E6":  {Balance: 30, Label: "Eye Drop: RM30"},
		"E7":  {Balance: 35, Label: "Eye Drop: READY"},
		"V0":  {Balance: 0, Label: "Vitamin: RM0"},
		"V1":  {Balance: 5, Label: "Vitamin: RM5"},
		"V2":  {Balance: 10, Label: "Vitamin: RM10"},
		"V3":  {Balance: 15, Label: "Vitamin: RM15"},
		"V4":  {Balance: 20, Label: "Vitamin: RM20"},
		"V5":  {Balance: 25, Label: "Vitamin: RM25"},
		"V6":  {Balance: 30, Label: "Vitamin: RM30"},
		"V7":  {Balance: 35, Label: "Vitamin: RM35"},
		"V8":  {Balance: 40, Label: "Vitamin: RM40"},
		"V9":  {Balance: 45, Label: "Vitamin: RM45"},
		"V10": {Balance: 50, Label: "Vitamin: READY"},
	},
	Deterministic: true,
	Delta: map[domain.State]drow{
		"S0": {selE: "E0", selV: "V0", rm5: "S0", rm10: "S0", rm20: "S0", eye: "S0", vit: "S0"},

		// Eye Drop line (RM35). The vitamin symbol is a self-loop here.
		"E0": {rm5: "E1", rm10: "E2", rm20: "E4", eye: "E0", vit: "E0", selE: "E0", selV: "V0"},
		"E1": {rm5: "E2", rm10: "E3", rm20: "E5", eye: "E1", vit: "E1", selE: "E1", selV: "V1"},
		"E2": {rm5: "E3", rm10: "E4", rm20: "E6", eye: "E2", vit: "E2", selE: "E2", selV: "V2"},
		"E3": {rm5: "E4", rm10: "E5", rm20: "E7", eye: "E3", vit: "E3", selE: "E3", selV: "V3"},
		"E4": {rm5: "E5", rm10: "E6", rm20: "E7", eye: "E4", vit: "E4", selE: "E4", selV: "V4"},
		"E5": {rm5: "E6", rm10: "E7", rm20: "E7", eye: "E5", vit: "E5", selE: "E5", selV: "V5"},
		"E6": {rm5: "E7", rm10: "E7", rm20: "E7", eye: "E6", vit: "E6", selE: "E6", selV: "V6"},
		"E7": {rm5: "E7", rm10: "E7", rm20: "E7", eye: "S0", vit: "E7", selE: "E7", selV: "V7"},

		// Vitamin line (RM50). The eye drop symbol is a self-loop here.
		"V0":  {rm5: "V1", rm10: "V2", rm20: "V4", eye: "V0", vit: "V0", selE: "E0", selV: "V0"},
		"V1":  {rm5: "V2", rm10: "V3", rm20: "V5", eye: "V1", vit: "V1", selE: "E1", selV: "V1"},
		"V2":  {rm5: "V3", rm10: "V4", rm20: "V6", eye: "V2", vit: "V2", selE: "E2", selV: "V2"},
		"V3":  {rm5: "V4", rm10: "V5", rm20: "V7", eye: "V3", vit: "V3", selE: "E3", selV: "V3"},
		"V4":  {rm5: "V5", rm10: "V6", rm20: "V8", eye: "V4", vit: "V4", selE: "E4", selV: "V4"},
		"V5":  {rm5: "V6", rm10: "V7", rm20: "V9", eye: "V5", vit: "V5", selE: "E5", selV: "V5"},
		"V6":  {rm5: "V7", rm10: "V8", rm20: "V10", eye: "V6", vit: "V6", selE: "E6", selV: "V6"},
		"V7":  {rm5: "V8", rm10: "V9", rm20: "V10", eye: "V7", vit: "V7", selE: "E7", selV: "V7"},
		"V8":  {rm5: "V9", rm10: "V10", rm20: "V10", eye: "V8", vit: "V8", selE: "E7", selV: "V8"},
		"V9":  {rm5: "V10", rm10: "V10", rm20: "V10", eye: "V9", vit: "V9", selE: "E7", selV: "V9"},
		"V10": {rm5: "V10", rm10: "V10", rm20: "V10", eye: "V10", vit: "S0", selE: "E7", selV: "V10"},
	},
}

// nfaDefinition is the non-deterministic machine. Money states Q0..Q10
// track the inserted total; accepting states Q7+ fan out through
// epsilon edges into EYE_READY (and VIT_READY from Q10). A dispense
// request moves a ready state into the DISPENSE sink, whose presence
// in the closure triggers the dispense and the built-in reset.
//
// A missing (state, symbol) entry means no move; rows list only real
// edges. Epsilon rows are likewise present only where edges exist.
var nfaDefinition = domain.Definition{
	Kind:        domain.KindNFA,
	Name:        "NFA",
	Description: "Non-deterministic with epsilon transitions",
	States: []domain.State{
		"Q0", "Q1", "Q2", "Q3", "Q4", "Q5", "Q6", "Q7", "Q8", "Q9", "Q10",
		"EYE_READY", "VIT_READY", "DISPENSE",
	},
	Alphabet:         []domain.Symbol{rm5, rm10, rm20, dspE, dspV},
	Initial:          "Q0",
	Accepting:        []domain.State{"EYE_READY", "VIT_READY"},
	AcceptingEyeDrop: []domain.State{"EYE_READY"},
	AcceptingVitamin: []domain.State{"VIT_READY"},
	Info: map[domain.State]domain.StateInfo{
		"Q0":        {Balance: 0, Label: "Initial"},
		"Q1":        {Balance: 5, Label: "RM5"},
		"Q2":        {Balance: 10, Label: "RM10"},
		"Q3":        {Balance: 15, Label: "RM15"},
		"Q4":        {Balance: 20, Label: "RM20"},
		"Q5":        {Balance: 25, Label: "RM25"},
		"Q6":        {Balance: 30, Label: "RM30"},
		"Q7":        {Balance: 35, Label: "RM35"},
		"Q8":        {Balance: 40, Label: "RM40"},
		"Q9":        {Balance: 45, Label: "RM45"},
		"Q10":       {Balance: 50, Label: "RM50"},
		"EYE_READY": {Balance: 0, Label: "Eye Drop Ready"},
		"VIT_READY": {Balance: 0, Label: "Vitamin Ready"},
		"DISPENSE":  {Balance: 0, Label: "Dispensing..."},
	},
	Deterministic: false,
	Relation: map[domain.State]nrow{
		"Q0":  {rm5: {"Q1"}, rm10: {"Q2"}, rm20: {"Q4"}},
		"Q1":  {rm5: {"Q2"}, rm10: {"Q3"}, rm20: {"Q5"}},
		"Q2":  {rm5: {"Q3"}, rm10: {"Q4"}, rm20: {"Q6"}},
		"Q3":  {rm5: {"Q4"}, rm10: {"Q5"}, rm20: {"Q7"}},
		"Q4":  {rm5: {"Q5"}, rm10: {"Q6"}, rm20: {"Q8"}},
		"Q5":  {rm5: {"Q6"}, rm10: {"Q7"}, rm20: {"Q9"}},
		"Q6":  {rm5: {"Q7"}, rm10: {"Q8"}, rm20: {"Q10"}},
		"Q7":  {rm5: {"Q8"}, rm10: {"Q9"}, rm20: {"Q10"}, eps: {"EYE_READY"}},
		"Q8":  {rm5: {"Q9"}, rm10: {"Q10"}, rm20: {"Q10"}, eps: {"EYE_READY"}},
		"Q9":  {rm5: {"Q10"}, rm10: {"Q10"}, rm20: {"Q10"}, eps: {"EYE_READY"}},
		"Q10": {rm5: {"Q10"}, rm10: {"Q10"}, rm20: {"Q10"}, eps: {"EYE_READY", "VIT_READY"}},

		"EYE_READY": {dspE: {"DISPENSE"}},
		"VIT_READY": {dspV: {"DISPENSE"}},
		"DISPENSE":  {eps: {"Q0"}},
	},
	DispenseState: "DISPENSE",
}
