package vendsim_test

import (
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/vendsim"
	"github.com/aretw0/vendsim/pkg/domain"
)

// Buying the Eye Drop on the single-path machine with exact change.
func Example() {
	m, err := vendsim.New(domain.KindSingle)
	if err != nil {
		log.Fatal(err)
	}

	for _, s := range []domain.Symbol{
		domain.SymbolRM20, domain.SymbolRM10, domain.SymbolRM5,
	} {
		m.Transition(s)
	}
	fmt.Println("balance:", m.Balance())

	rec := m.Transition(domain.SymbolEyeDrop)
	fmt.Println("dispensed:", rec.Dispensed)
	fmt.Println("state:", rec.After[0])

	// Output:
	// balance: 35
	// dispensed: Eye Drop
	// state: Q0
}

// The NFA holds a set of states; crossing RM35 adds EYE_READY through
// an epsilon edge without consuming input.
func Example_nfa() {
	m, err := vendsim.New(domain.KindNFA)
	if err != nil {
		log.Fatal(err)
	}

	m.Transition(domain.SymbolRM20)
	m.Transition(domain.SymbolRM20)

	states := make([]string, 0, 2)
	for _, s := range m.Current() {
		states = append(states, string(s))
	}
	fmt.Println(strings.Join(states, ", "))

	// Output:
	// EYE_READY, Q8
}
