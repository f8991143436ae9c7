package ports

import (
	"context"

	"github.com/aretw0/vendsim/pkg/domain"
)

// SessionStore defines the interface for persisting machine snapshots
// between requests. This is what lets a web front end hold one machine
// per user session, the way the reference web UI kept its machine in
// per-session state.
type SessionStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, snap domain.Snapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (domain.Snapshot, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of active sessions.
	List(ctx context.Context) ([]string, error)
}
