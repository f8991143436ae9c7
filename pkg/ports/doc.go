/*
Package ports defines the interfaces (ports) between the vendsim core
and its adapters, following Hexagonal Architecture.

  - Machine: the uniform operation set every automaton flavor exposes
    to presentation layers (CLI, HTTP, MCP).
  - SessionStore: persistence of machine snapshots across requests.
*/
package ports
