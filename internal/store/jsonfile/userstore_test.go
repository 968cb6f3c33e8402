package jsonfile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/drift-im/drift/internal/core/identity"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load without record", func(t *testing.T) {
		store := NewUserStore(filepath.Join(t.TempDir(), "drift.json"))

		_, err := store.Load(ctx)
		if !errors.Is(err, identity.ErrNoSession) {
			t.Errorf("got %v, want ErrNoSession", err)
		}
	})

	t.Run("save and load round trip", func(t *testing.T) {
		store := NewUserStore(filepath.Join(t.TempDir(), "drift.json"))

		u := identity.User{
			ID:          "u1",
			Username:    "alice",
			DisplayName: "Alice Johnson",
			Avatar:      "https://avatar.vercel.sh/alice",
			Status:      "Available",
		}

		if err := store.Save(ctx, u); err != nil {
			t.Fatalf("Save: %v", err)
		}

		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got != u {
			t.Errorf("got %+v, want %+v", got, u)
		}
	})

	t.Run("save replaces existing", func(t *testing.T) {
		store := NewUserStore(filepath.Join(t.TempDir(), "drift.json"))

		if err := store.Save(ctx, identity.User{ID: "u1", Username: "alice"}); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := store.Save(ctx, identity.User{ID: "u1", Username: "alice", Status: "Away"}); err != nil {
			t.Fatalf("Save update: %v", err)
		}

		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got.Status != "Away" {
			t.Errorf("got status %q, want %q", got.Status, "Away")
		}
	})

	t.Run("clear", func(t *testing.T) {
		store := NewUserStore(filepath.Join(t.TempDir(), "drift.json"))

		if err := store.Save(ctx, identity.User{ID: "u1", Username: "alice"}); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := store.Clear(ctx); err != nil {
			t.Fatalf("Clear: %v", err)
		}

		_, err := store.Load(ctx)
		if !errors.Is(err, identity.ErrNoSession) {
			t.Errorf("got %v, want ErrNoSession", err)
		}
	})

	t.Run("clear absent record is not an error", func(t *testing.T) {
		store := NewUserStore(filepath.Join(t.TempDir(), "drift.json"))

		if err := store.Clear(ctx); err != nil {
			t.Errorf("Clear: %v", err)
		}
	})
}
