package cart

import (
	"context"
	"testing"

	pkgerrors "github.com/gamingtechpro/storefront-backend/pkg/errors"
	"github.com/gamingtechpro/storefront-backend/pkg/kvstore"
	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) (*Store, *kvstore.Memory) {
	t.Helper()
	kv := kvstore.NewMemory()
	store, err := NewStore(context.Background(), kv, kvstore.CartKey())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, kv
}

func headset() Line {
	return Line{ID: "gt-101", Name: "Pro Gaming Headset", UnitPrice: decimal.NewFromInt(1000)}
}

func mousepad() Line {
	return Line{ID: "gt-202", Name: "XL Mousepad", UnitPrice: decimal.NewFromInt(500)}
}

func TestAddMergesByProductID(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, headset(), 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(ctx, headset(), 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines := store.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", lines[0].Quantity)
	}
}

func TestAddClampsQuantityToOne(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, headset(), 0); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(ctx, mousepad(), -4); err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, line := range store.Lines() {
		if line.Quantity != 1 {
			t.Fatalf("expected clamped quantity 1 for %s, got %d", line.ID, line.Quantity)
		}
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	_ = store.Add(ctx, headset(), 1)
	_ = store.Add(ctx, mousepad(), 1)
	_ = store.Add(ctx, headset(), 1)

	lines := store.Lines()
	if len(lines) != 2 || lines[0].ID != "gt-101" || lines[1].ID != "gt-202" {
		t.Fatalf("unexpected order: %+v", lines)
	}
}

func TestTotalAndCount(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	_ = store.Add(ctx, headset(), 2)
	_ = store.Add(ctx, mousepad(), 1)

	if got := store.Total(); !got.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expected total 2500, got %s", got)
	}
	if got := store.Count(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	_ = store.Add(ctx, headset(), 1)

	if err := store.Remove(ctx, "gt-101"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove(ctx, "gt-101"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if !store.IsEmpty() {
		t.Fatal("expected empty cart")
	}

	if err := store.Remove(ctx, "never-added"); err != nil {
		t.Fatalf("remove of absent id should be a no-op: %v", err)
	}
}

func TestSetQuantityZeroOrNegativeRemovesLine(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	_ = store.Add(ctx, headset(), 3)
	if err := store.SetQuantity(ctx, "gt-101", 0); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if !store.IsEmpty() {
		t.Fatal("expected quantity 0 to remove the line")
	}

	_ = store.Add(ctx, headset(), 3)
	if err := store.SetQuantity(ctx, "gt-101", -5); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if !store.IsEmpty() {
		t.Fatal("expected negative quantity to remove the line")
	}
}

func TestSetQuantityUpdatesLine(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	_ = store.Add(ctx, headset(), 1)
	if err := store.SetQuantity(ctx, "gt-101", 7); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if got := store.Count(); got != 7 {
		t.Fatalf("expected count 7, got %d", got)
	}

	// Unknown id is ignored.
	if err := store.SetQuantity(ctx, "gt-999", 4); err != nil {
		t.Fatalf("set quantity for absent id: %v", err)
	}
	if got := store.Count(); got != 7 {
		t.Fatalf("expected count unchanged, got %d", got)
	}
}

func TestEveryMutationPersistsSnapshot(t *testing.T) {
	t.Parallel()

	store, kv := newTestStore(t)
	ctx := context.Background()

	_ = store.Add(ctx, headset(), 2)

	raw, err := kv.Get(ctx, kvstore.CartKey())
	if err != nil {
		t.Fatalf("expected snapshot persisted: %v", err)
	}
	lines, err := DecodeSnapshot(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("unexpected persisted lines: %+v", lines)
	}

	rehydrated, err := NewStore(ctx, kv, kvstore.CartKey())
	if err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	if got := rehydrated.Count(); got != 2 {
		t.Fatalf("expected rehydrated count 2, got %d", got)
	}
}

func TestClearEmptiesAndPersists(t *testing.T) {
	t.Parallel()

	store, kv := newTestStore(t)
	ctx := context.Background()

	_ = store.Add(ctx, headset(), 2)
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !store.IsEmpty() {
		t.Fatal("expected empty cart")
	}

	rehydrated, err := NewStore(ctx, kv, kvstore.CartKey())
	if err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	if !rehydrated.IsEmpty() {
		t.Fatal("expected persisted cart to be empty")
	}
}

func TestNewStoreRejectsMalformedSnapshot(t *testing.T) {
	t.Parallel()

	kv := kvstore.NewMemory()
	ctx := context.Background()
	_ = kv.Set(ctx, kvstore.CartKey(), "{not json")

	if _, err := NewStore(ctx, kv, kvstore.CartKey()); err == nil {
		t.Fatal("expected malformed snapshot to be rejected")
	}
}

func TestDecodeSnapshotRejectsBadShapes(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"wrong version":  `{"version":99,"lines":[]}`,
		"zero quantity":  `{"version":1,"lines":[{"id":"a","name":"x","unit_price":"10","quantity":0}]}`,
		"missing id":     `{"version":1,"lines":[{"name":"x","unit_price":"10","quantity":1}]}`,
		"duplicate id":   `{"version":1,"lines":[{"id":"a","unit_price":"10","quantity":1},{"id":"a","unit_price":"10","quantity":1}]}`,
		"negative price": `{"version":1,"lines":[{"id":"a","unit_price":"-10","quantity":1}]}`,
	}
	for name, raw := range cases {
		if _, err := DecodeSnapshot(raw); err == nil {
			t.Errorf("%s: expected rejection", name)
		} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}
