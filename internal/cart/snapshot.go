package cart

import (
	"encoding/json"
	"fmt"

	pkgerrors "github.com/gamingtechpro/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Line is one product entry in the cart with an aggregated quantity.
type Line struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageRef  string          `json:"image_ref,omitempty"`
}

const snapshotVersion = 1

// snapshot is the persisted wire shape. The version gate rejects shapes
// written by incompatible builds instead of silently mis-reading them.
type snapshot struct {
	Version int    `json:"version"`
	Lines   []Line `json:"lines"`
}

// encodeSnapshot serializes the full cart for the key-value store.
func encodeSnapshot(lines []Line) (string, error) {
	raw, err := json.Marshal(snapshot{Version: snapshotVersion, Lines: lines})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	return string(raw), nil
}

// DecodeSnapshot parses a persisted cart snapshot, rejecting malformed data
// with a typed error rather than hydrating a half-shaped cart.
func DecodeSnapshot(raw string) ([]Line, error) {
	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed cart snapshot")
	}
	if snap.Version != snapshotVersion {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unsupported cart snapshot version %d", snap.Version))
	}

	seen := map[string]struct{}{}
	for _, line := range snap.Lines {
		if line.ID == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart line missing product id")
		}
		if _, dup := seen[line.ID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("duplicate cart line for product %q", line.ID))
		}
		seen[line.ID] = struct{}{}
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cart line %q has quantity %d", line.ID, line.Quantity))
		}
		if line.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cart line %q has negative unit price", line.ID))
		}
	}
	return snap.Lines, nil
}
