// Package cart owns the shopping cart line items and their persistence.
// The cart is hydrated once at construction and written back whole on every
// mutation, so a reader that runs after a mutating call always observes the
// state that call produced.
package cart

import (
	"context"
	"sync"

	pkgerrors "github.com/gamingtechpro/storefront-backend/pkg/errors"
	"github.com/gamingtechpro/storefront-backend/pkg/kvstore"
	"github.com/shopspring/decimal"
)

// Store holds the ordered cart lines behind their snapshot key. Invariants:
// at most one line per product id, quantity always >= 1, insertion order is
// display order.
type Store struct {
	mu    sync.Mutex
	kv    kvstore.Store
	key   string
	lines []Line
}

// NewStore hydrates a cart from the persisted snapshot at key, or starts
// empty when nothing is stored yet. A malformed snapshot is an error, not an
// empty cart.
func NewStore(ctx context.Context, kv kvstore.Store, key string) (*Store, error) {
	if kv == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "kv store required")
	}
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "snapshot key required")
	}

	s := &Store{kv: kv, key: key}

	raw, err := kv.Get(ctx, key)
	if err != nil {
		if kvstore.IsNotFound(err) {
			return s, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}

	lines, err := DecodeSnapshot(raw)
	if err != nil {
		return nil, err
	}
	s.lines = lines
	return s, nil
}

// Add merges quantity into an existing line for the product or appends a new
// line at the end. Quantity is clamped to at least 1; invalid input is never
// rejected. Negative unit prices are clamped to zero for the same reason.
func (s *Store) Add(ctx context.Context, product Line, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if product.UnitPrice.IsNegative() {
		product.UnitPrice = decimal.Zero
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyLines()
	merged := false
	for i := range next {
		if next[i].ID == product.ID {
			next[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		product.Quantity = quantity
		next = append(next, product)
	}

	return s.commit(ctx, next)
}

// Remove deletes the line for the product id. Removing an absent id is a
// no-op, and calling it twice yields the same cart as calling it once.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Line, 0, len(s.lines))
	for _, line := range s.lines {
		if line.ID != productID {
			next = append(next, line)
		}
	}
	return s.commit(ctx, next)
}

// SetQuantity sets the line's quantity. A quantity of zero or less removes
// the line entirely; a line is never retained at quantity zero.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyLines()
	for i := range next {
		if next[i].ID == productID {
			next[i].Quantity = quantity
			return s.commit(ctx, next)
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, nil)
}

// Total returns the sum of unit price times quantity over all lines. No
// rounding happens here; display formatting owns that.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Count returns the summed quantity across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLines()
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// Snapshot returns the serialized form of the current cart, as persisted.
func (s *Store) Snapshot() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return encodeSnapshot(s.lines)
}

// commit persists the candidate lines and only then makes them visible.
// Callers must hold s.mu.
func (s *Store) commit(ctx context.Context, next []Line) error {
	encoded, err := encodeSnapshot(next)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, encoded); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart snapshot")
	}
	s.lines = next
	return nil
}

func (s *Store) copyLines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}
