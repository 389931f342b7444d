package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/omara/internal/db"
)

func TestGetJWTSecret_GeneratesAndPersists(t *testing.T) {
	backends := map[string]KV{
		"sqlite": NewSQLite(db.NewTestDB(t)),
		"memory": NewMemory(),
	}

	for name, kv := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// First call should generate a secret.
			secret1, err := GetJWTSecret(ctx, kv)
			if err != nil {
				t.Fatal(err)
			}
			if len(secret1) != 64 { // 32 bytes = 64 hex chars
				t.Fatalf("expected 64 hex chars, got %d", len(secret1))
			}

			// Second call should return the same secret.
			secret2, err := GetJWTSecret(ctx, kv)
			if err != nil {
				t.Fatal(err)
			}
			if secret1 != secret2 {
				t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
			}
		})
	}
}

func TestPasscodeHash(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	if _, err := GetPasscodeHash(ctx, kv); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before init, got %v", err)
	}

	if err := SetPasscodeHash(ctx, kv, "hash"); err != nil {
		t.Fatalf("SetPasscodeHash: %v", err)
	}

	got, err := GetPasscodeHash(ctx, kv)
	if err != nil {
		t.Fatalf("GetPasscodeHash: %v", err)
	}
	if got != "hash" {
		t.Errorf("expected 'hash', got %q", got)
	}
}
