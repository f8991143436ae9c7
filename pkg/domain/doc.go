/*
Package domain contains the core domain models for the vendsim engines.

It defines the fundamental entities of the automata, such as Symbols,
States, transition Records, and the immutable machine Definitions. This
package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Symbol: An input token from a machine's alphabet (coins, product
    requests, path selections).
  - State: A point in the automaton. Static metadata (balance, label)
    is looked up per state, never mutated.
  - Definition: The complete, read-only description of one automaton
    (states, alphabet, transition relation, accepting sets).
  - Record: One executed transition (before, symbol, after, dispensed).
  - Snapshot: The serializable runtime position of a machine, used for
    session persistence.
*/
package domain
