/*
Package observability provides monitoring for the machines.

It includes Prometheus collectors for transitions and dispenses, wired
in through the lifecycle hooks so any frontend (CLI, HTTP, MCP) gets
the same counters.
*/
package observability
