/*
Package machine implements the three vending machine automata behind
the ports.Machine interface:

  - single: deterministic, one shared state line for both products
  - dual: deterministic, product selected first, two disjoint lines
  - nfa: non-deterministic, set-valued position, epsilon transitions

The transition tables live in tables.go as package-level definitions;
they are built once and shared read-only. The runtimes here own only
the mutable position and the transition log.
*/
package machine
