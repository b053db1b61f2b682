package kvstore

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if _, err := store.Get(ctx, CartKey()); !IsNotFound(err) {
		t.Fatalf("expected not-found for missing key, got %v", err)
	}

	if err := store.Set(ctx, CartKey(), `{"version":1}`); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	value, err := store.Get(ctx, CartKey())
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if value != `{"version":1}` {
		t.Fatalf("unexpected value: %s", value)
	}

	if err := store.Remove(ctx, CartKey()); err != nil {
		t.Fatalf("unexpected remove error: %v", err)
	}
	if _, err := store.Get(ctx, CartKey()); !IsNotFound(err) {
		t.Fatalf("expected not-found after remove, got %v", err)
	}
}

func TestMemoryRemoveMissingKeyIsNoop(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	if err := store.Remove(context.Background(), "gt:absent"); err != nil {
		t.Fatalf("remove of missing key should not error: %v", err)
	}
}

func TestKeysDoNotAlias(t *testing.T) {
	t.Parallel()

	if CartKey() == CheckoutCartKey() {
		t.Fatal("live cart and checkout cart must use distinct keys")
	}
	if SessionKey("a") == SessionKey("b") {
		t.Fatal("session keys must vary by token id")
	}
}
