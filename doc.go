/*
Package vendsim simulates a vending machine with three formal automata
built over the same two products: an Eye Drop at RM35 and a Vitamin at
RM50.

It ships a single-path DFA (one shared state line for both products), a
dual-path DFA (a dedicated state line per product, selected up front)
and an NFA with epsilon transitions (readiness states reached without
consuming input). All three consume the same kind of input symbols
(coins and product requests) and expose the same runtime surface, which
makes them directly comparable.

# Concept

Each machine is a fixed transition table plus a tiny runtime. The
engine manages state, history and dispensing, while the host manages
I/O: the same core runs under the CLI, the HTTP server and the MCP
adapter. Machines never reject input. A symbol that has no effect in
the current state is absorbed, so every input sequence is valid.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/vendsim"
		"github.com/aretw0/vendsim/pkg/domain"
	)

	func main() {
		m, err := vendsim.New(domain.KindSingle)
		if err != nil {
			log.Fatal(err)
		}

		for _, s := range []domain.Symbol{
			domain.SymbolRM20, domain.SymbolRM10, domain.SymbolRM5,
		} {
			m.Transition(s)
		}
		fmt.Println(m.Balance(), m.CanBuyEyeDrop()) // 35 true

		rec := m.Transition(domain.SymbolEyeDrop)
		fmt.Println(rec.Dispensed) // Eye Drop
	}
*/
package vendsim
