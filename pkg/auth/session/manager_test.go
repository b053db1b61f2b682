package session

import (
	"context"
	"errors"
	"testing"

	"github.com/gamingtechpro/storefront-backend/pkg/kvstore"
)

func TestManagerCreateHasRevoke(t *testing.T) {
	t.Parallel()

	mgr, err := NewManager(kvstore.NewMemory())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	ctx := context.Background()

	if err := mgr.Create(ctx, "jti-1", "acct-1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := mgr.Has(ctx, "jti-1")
	if err != nil || !ok {
		t.Fatalf("expected live session, got ok=%v err=%v", ok, err)
	}

	accountID, err := mgr.AccountID(ctx, "jti-1")
	if err != nil || accountID != "acct-1" {
		t.Fatalf("unexpected account id %q err=%v", accountID, err)
	}

	if err := mgr.Revoke(ctx, "jti-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	ok, err = mgr.Has(ctx, "jti-1")
	if err != nil || ok {
		t.Fatalf("expected revoked session, got ok=%v err=%v", ok, err)
	}
	if _, err := mgr.AccountID(ctx, "jti-1"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestManagerRequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := NewManager(nil); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestManagerCreateValidatesInput(t *testing.T) {
	t.Parallel()

	mgr, _ := NewManager(kvstore.NewMemory())
	if err := mgr.Create(context.Background(), "", "acct-1"); err == nil {
		t.Fatal("expected error for empty token id")
	}
	if err := mgr.Create(context.Background(), "jti-1", " "); err == nil {
		t.Fatal("expected error for empty account id")
	}
}
