package pricing

import (
	"strings"
	"sync"

	pkgerrors "github.com/gamingtechpro/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Promo maps a discount token to a percentage rate off the subtotal.
type Promo struct {
	Code         string          `json:"code"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	Description  string          `json:"description"`
}

// Catalog is the fixed promo set known at build time. Codes are stored
// upper-cased; lookup normalizes input to match.
type Catalog map[string]Promo

// DefaultCatalog returns the storefront's promo codes.
func DefaultCatalog() Catalog {
	return Catalog{
		"WELCOME10": {Code: "WELCOME10", DiscountRate: decimal.RequireFromString("0.10"), Description: "10% off for new customers"},
		"GAMING20":  {Code: "GAMING20", DiscountRate: decimal.RequireFromString("0.20"), Description: "20% off gaming accessories"},
		"SAVE15":    {Code: "SAVE15", DiscountRate: decimal.RequireFromString("0.15"), Description: "15% off all products"},
		"STUDENT":   {Code: "STUDENT", DiscountRate: decimal.RequireFromString("0.12"), Description: "12% off for students"},
	}
}

// Lookup resolves a raw user-entered code. The code is trimmed and
// upper-cased before matching; an unknown code is a not-found error.
func (c Catalog) Lookup(raw string) (Promo, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return Promo{}, pkgerrors.New(pkgerrors.CodeValidation, "promo code is required")
	}
	promo, ok := c[code]
	if !ok {
		return Promo{}, pkgerrors.New(pkgerrors.CodeNotFound, "invalid promo code")
	}
	return promo, nil
}

// Selection holds the single promo applied to a checkout. Applying a second
// promo replaces the first; promos never stack.
type Selection struct {
	mu      sync.Mutex
	catalog Catalog
	applied *Promo
}

// NewSelection starts with no promo applied.
func NewSelection(catalog Catalog) *Selection {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Selection{catalog: catalog}
}

// Apply resolves and applies the code. An unknown code leaves the current
// selection unchanged.
func (s *Selection) Apply(raw string) (Promo, error) {
	promo, err := s.catalog.Lookup(raw)
	if err != nil {
		return Promo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = &promo
	return promo, nil
}

// Remove clears the selection back to none.
func (s *Selection) Remove() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = nil
}

// Current returns the applied promo, or nil when none is applied.
func (s *Selection) Current() *Promo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applied == nil {
		return nil
	}
	promo := *s.applied
	return &promo
}
