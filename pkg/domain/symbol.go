package domain

// Symbol is an input token drawn from a machine's alphabet.
// Symbols are opaque and compared by equality.
type Symbol string

// Coin symbols, shared by all three machines.
const (
	SymbolRM5  Symbol = "RM5"
	SymbolRM10 Symbol = "RM10"
	SymbolRM20 Symbol = "RM20"
)

// Product request symbols for the deterministic machines.
const (
	SymbolEyeDrop Symbol = "e"
	SymbolVitamin Symbol = "v"
)

// Path selection symbols (dual-path machine only).
const (
	SymbolSelectEyeDrop Symbol = "select_e"
	SymbolSelectVitamin Symbol = "select_v"
)

// Dispense request symbols (NFA only).
const (
	SymbolDispenseEyeDrop Symbol = "dispense_e"
	SymbolDispenseVitamin Symbol = "dispense_v"
)

// Epsilon is the internal pseudo-symbol for transitions consumed
// without input. It is never part of a machine's public alphabet.
const Epsilon Symbol = "eps"
