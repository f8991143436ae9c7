package domain

import "fmt"

// Kind is the variant tag distinguishing the three machine flavors.
// The presentation layer writes one call path against the uniform
// machine interface and branches on Kind only for labels and symbols.
type Kind string

const (
	// KindSingle is the single-path DFA: one shared state line for
	// both products.
	KindSingle Kind = "single"

	// KindDual is the dual-path DFA: product is selected first, then
	// money advances along that product's own state line.
	KindDual Kind = "dual"

	// KindNFA is the non-deterministic machine with epsilon
	// transitions and a set-valued position.
	KindNFA Kind = "nfa"
)

// Kinds lists all machine kinds in presentation order.
func Kinds() []Kind {
	return []Kind{KindSingle, KindDual, KindNFA}
}

// ParseKind validates a kind string from the outside world (CLI flag,
// HTTP payload). Returns ErrUnknownKind for anything unrecognized.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSingle, KindDual, KindNFA:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}
