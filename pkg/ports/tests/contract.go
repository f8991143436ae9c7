package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/vendsim/pkg/domain"
	"github.com/aretw0/vendsim/pkg/ports"
)

// SessionStoreContract is a reusable test suite that verifies an
// adapter complies with ports.SessionStore.
func SessionStoreContract(t *testing.T, store ports.SessionStore) {
	t.Helper()
	ctx := context.Background()

	snap := domain.Snapshot{
		Kind:    domain.KindSingle,
		Current: []domain.State{"Q3"},
		History: []domain.Record{
			{Before: []domain.State{"Q0"}, Symbol: domain.SymbolRM5, After: []domain.State{"Q1"}},
			{Before: []domain.State{"Q1"}, Symbol: domain.SymbolRM10, After: []domain.State{"Q3"}},
		},
	}

	t.Run("Save_Load_Roundtrip", func(t *testing.T) {
		if err := store.Save(ctx, "contract-a", snap); err != nil {
			t.Fatalf("unexpected save error: %v", err)
		}

		got, err := store.Load(ctx, "contract-a")
		if err != nil {
			t.Fatalf("unexpected load error: %v", err)
		}
		if got.Kind != snap.Kind {
			t.Errorf("kind mismatch: got %q, want %q", got.Kind, snap.Kind)
		}
		if len(got.Current) != 1 || got.Current[0] != "Q3" {
			t.Errorf("current mismatch: got %v", got.Current)
		}
		if len(got.History) != 2 {
			t.Errorf("expected 2 history records, got %d", len(got.History))
		}
	})

	t.Run("Load_Isolation", func(t *testing.T) {
		// Mutating a loaded snapshot must not affect the stored copy.
		got, err := store.Load(ctx, "contract-a")
		if err != nil {
			t.Fatalf("unexpected load error: %v", err)
		}
		got.Current[0] = "Q10"

		again, err := store.Load(ctx, "contract-a")
		if err != nil {
			t.Fatalf("unexpected load error: %v", err)
		}
		if again.Current[0] != "Q3" {
			t.Errorf("store leaked mutable state: got %q, want Q3", again.Current[0])
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "contract-missing")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		if err := store.Save(ctx, "contract-b", snap); err != nil {
			t.Fatalf("unexpected save error: %v", err)
		}

		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected list error: %v", err)
		}
		lookup := make(map[string]bool, len(ids))
		for _, id := range ids {
			lookup[id] = true
		}
		if !lookup["contract-a"] || !lookup["contract-b"] {
			t.Errorf("missing sessions in list: %v", ids)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "contract-a"); err != nil {
			t.Fatalf("unexpected delete error: %v", err)
		}
		_, err := store.Load(ctx, "contract-a")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}
	})
}
