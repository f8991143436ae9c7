// Package memory provides an in-memory SessionStore, suitable for
// tests and single-process servers.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/vendsim/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Snapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Snapshot),
	}
}

// Save persists the snapshot in memory.
func (s *Store) Save(ctx context.Context, sessionID string, snap domain.Snapshot) error {
	// Copy on write so the caller's slices stay isolated.
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = cloneSnapshot(snap)
	return nil
}

// Load retrieves the snapshot from memory.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[sessionID]
	if !ok {
		return domain.Snapshot{}, domain.ErrSessionNotFound
	}

	// Copy on read so the caller cannot mutate stored slices.
	return cloneSnapshot(snap), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active sessions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}

func cloneSnapshot(snap domain.Snapshot) domain.Snapshot {
	out := domain.Snapshot{
		Kind:    snap.Kind,
		Current: append([]domain.State(nil), snap.Current...),
	}
	if snap.History != nil {
		out.History = make([]domain.Record, len(snap.History))
		for i, r := range snap.History {
			out.History[i] = domain.Record{
				Before:    append([]domain.State(nil), r.Before...),
				Symbol:    r.Symbol,
				After:     append([]domain.State(nil), r.After...),
				Dispensed: r.Dispensed,
			}
		}
	}
	return out
}
