/*
Package session implements session management and persistence
orchestration.

A session pairs one machine instance with one ID. The Manager
serializes access per session, so a caller can load a snapshot, run
transitions and save the result without another request interleaving.
*/
package session
