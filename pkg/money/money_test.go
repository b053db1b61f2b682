package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatRoundsToTwoPlaces(t *testing.T) {
	t.Parallel()

	if got := Format(decimal.RequireFromString("3175")); got != "PKR 3175.00" {
		t.Fatalf("unexpected format: %s", got)
	}
	if got := Format(decimal.RequireFromString("424.995")); got != "PKR 425.00" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestFormatShippingZeroIsFree(t *testing.T) {
	t.Parallel()

	if got := FormatShipping(decimal.Zero); got != "Free" {
		t.Fatalf("unexpected shipping format: %s", got)
	}
	if got := FormatShipping(decimal.NewFromInt(250)); got != "PKR 250.00" {
		t.Fatalf("unexpected shipping format: %s", got)
	}
}

func TestFormatDiscount(t *testing.T) {
	t.Parallel()

	if got := FormatDiscount(decimal.Zero); got != "" {
		t.Fatalf("expected empty discount, got %s", got)
	}
	if got := FormatDiscount(decimal.NewFromInt(375)); got != "-PKR 375.00" {
		t.Fatalf("unexpected discount format: %s", got)
	}
}
