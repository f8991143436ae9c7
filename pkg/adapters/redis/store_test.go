package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/vendsim/pkg/adapters/redis"
	"github.com/aretw0/vendsim/pkg/domain"
	portstests "github.com/aretw0/vendsim/pkg/ports/tests"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	portstests.SessionStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	store, mr := newTestStore(t, redis.WithPrefix("custom:"))
	ctx := context.Background()

	snap := domain.Snapshot{Kind: domain.KindNFA, Current: []domain.State{"Q0"}}
	require.NoError(t, store.Save(ctx, "abc", snap))

	assert.True(t, mr.Exists("custom:abc"))
	assert.True(t, mr.Exists("custom:index"))
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	store, mr := newTestStore(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	snap := domain.Snapshot{Kind: domain.KindDual, Current: []domain.State{"S0"}}
	require.NoError(t, store.Save(ctx, "ephemeral", snap))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ephemeral"}, sessions)

	// Past the TTL the value itself is gone. The index prunes on wall
	// clock time, so only the value expiry is observable here.
	mr.FastForward(2 * time.Minute)

	_, err = store.Load(ctx, "ephemeral")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
