package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gamingtechpro/storefront-backend/pkg/kvstore"
)

// ErrNoSession is returned when a token's session record is absent.
var ErrNoSession = errors.New("session not found")

// Manager keeps per-token session records in the key-value store. This is
// local session bookkeeping in front of the JWT expiry, not a security
// boundary: revocation just deletes the record.
type Manager struct {
	store kvstore.Store
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	Has(ctx context.Context, tokenID string) (bool, error)
}

// NewManager constructs a session manager backed by the provided store.
func NewManager(store kvstore.Store) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store is required")
	}
	return &Manager{store: store}, nil
}

// Create records a session for the token ID.
func (m *Manager) Create(ctx context.Context, tokenID, accountID string) error {
	if strings.TrimSpace(tokenID) == "" {
		return fmt.Errorf("token id is required")
	}
	if strings.TrimSpace(accountID) == "" {
		return fmt.Errorf("account id is required")
	}
	return m.store.Set(ctx, kvstore.SessionKey(tokenID), accountID)
}

// Has reports whether the token still has a live session record.
func (m *Manager) Has(ctx context.Context, tokenID string) (bool, error) {
	if strings.TrimSpace(tokenID) == "" {
		return false, nil
	}
	_, err := m.store.Get(ctx, kvstore.SessionKey(tokenID))
	if err != nil {
		if kvstore.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AccountID returns the account bound to the token's session.
func (m *Manager) AccountID(ctx context.Context, tokenID string) (string, error) {
	accountID, err := m.store.Get(ctx, kvstore.SessionKey(tokenID))
	if err != nil {
		if kvstore.IsNotFound(err) {
			return "", ErrNoSession
		}
		return "", err
	}
	return accountID, nil
}

// Revoke deletes the session record for the token.
func (m *Manager) Revoke(ctx context.Context, tokenID string) error {
	if strings.TrimSpace(tokenID) == "" {
		return nil
	}
	return m.store.Remove(ctx, kvstore.SessionKey(tokenID))
}
