// Package pricing computes order totals under the storefront's fee and tax
// schedule. All math runs on decimals and nothing here rounds; display
// formatting rounds once at the edge.
package pricing

import (
	"github.com/gamingtechpro/storefront-backend/pkg/config"
	"github.com/shopspring/decimal"
)

// Schedule carries the fee and tax constants applied at checkout.
type Schedule struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultSchedule is the storefront schedule: free shipping strictly above
// PKR 5000, a flat PKR 250 fee otherwise, and 17% GST.
func DefaultSchedule() Schedule {
	return Schedule{
		FreeShippingThreshold: decimal.NewFromInt(5000),
		FlatShippingFee:       decimal.NewFromInt(250),
		TaxRate:               decimal.RequireFromString("0.17"),
	}
}

// ScheduleFromConfig builds a schedule from the loaded configuration.
func ScheduleFromConfig(cfg config.PricingConfig) Schedule {
	return Schedule{
		FreeShippingThreshold: decimal.NewFromFloat(cfg.FreeShippingThreshold),
		FlatShippingFee:       decimal.NewFromFloat(cfg.FlatShippingFee),
		TaxRate:               decimal.NewFromFloat(cfg.TaxRate),
	}
}

// Totals is derived on demand from the cart and applied promo; it is never
// cached or persisted, so it cannot go stale.
type Totals struct {
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	Tax        decimal.Decimal
	Discount   decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeTotals derives order totals from the subtotal and the optionally
// applied promo. Shipping is waived only when the subtotal is strictly
// greater than the threshold; a subtotal exactly at the threshold still pays
// the fee. Tax applies to the pre-discount subtotal; a promo reduces the
// grand total but not the tax base.
func ComputeTotals(subtotal decimal.Decimal, promo *Promo, sched Schedule) Totals {
	shipping := sched.FlatShippingFee
	if subtotal.GreaterThan(sched.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(sched.TaxRate)

	discount := decimal.Zero
	if promo != nil {
		discount = subtotal.Mul(promo.DiscountRate)
	}

	return Totals{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		Discount:   discount,
		GrandTotal: subtotal.Add(shipping).Add(tax).Sub(discount),
	}
}
