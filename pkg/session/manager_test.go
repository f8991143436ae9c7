package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/vendsim/pkg/adapters/memory"
	"github.com/aretw0/vendsim/pkg/domain"
	"github.com/aretw0/vendsim/pkg/session"
)

// SlowStore simulates latency to provoke race conditions if locking is
// missing.
type SlowStore struct {
	data map[string]domain.Snapshot
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, sessionID string, snap domain.Snapshot) error {
	time.Sleep(10 * time.Millisecond) // simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]domain.Snapshot)
	}
	s.data[sessionID] = snap
	return nil
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	time.Sleep(10 * time.Millisecond) // simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap, ok := s.data[sessionID]; ok {
		return snap, nil
	}
	return domain.Snapshot{}, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestManager_Locking(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "race-test"

	snap := domain.Snapshot{Kind: domain.KindSingle, Current: []domain.State{"Q0"}}
	require.NoError(t, manager.Save(ctx, id, snap))

	var wg sync.WaitGroup
	concurrentWrites := 10

	// Writes must be serialized per session; the SlowStore makes lost
	// updates likely if WithLock does not hold.
	for i := 0; i < concurrentWrites; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.Save(ctx, id, domain.Snapshot{
				Kind:    domain.KindSingle,
				Current: []domain.State{"Q1"},
			})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()
}

func TestManager_LoadOrStart(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := manager.LoadOrStart(ctx, id, domain.KindNFA)
			assert.NoError(t, err)
			assert.Equal(t, domain.KindNFA, snap.Kind)
		}()
	}
	wg.Wait()

	snap, err := manager.Load(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, []domain.State{"Q0"}, snap.Current)
}

func TestManager_LoadOrStartKindMismatch(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := manager.LoadOrStart(ctx, "sess", domain.KindSingle)
	require.NoError(t, err)

	_, err = manager.LoadOrStart(ctx, "sess", domain.KindDual)
	assert.ErrorIs(t, err, domain.ErrKindMismatch)
}

func TestManager_Lifecycle(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := manager.Load(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = manager.LoadOrStart(ctx, "a", domain.KindDual)
	require.NoError(t, err)
	_, err = manager.LoadOrStart(ctx, "b", domain.KindSingle)
	require.NoError(t, err)

	ids, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	require.NoError(t, manager.Delete(ctx, "a"))
	_, err = manager.Load(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
