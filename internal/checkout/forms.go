package checkout

import (
	"time"

	"github.com/gamingtechpro/storefront-backend/internal/validation"
	"github.com/gamingtechpro/storefront-backend/pkg/enums"
)

// ContactDetails are required for every payment method.
type ContactDetails struct {
	Email string
	Phone string
}

// CardDetails are required only when paying by card.
type CardDetails struct {
	Number string
	Expiry string
	CVV    string
}

// PlaceOrderInput is the full payload for order placement.
type PlaceOrderInput struct {
	PaymentMethod enums.PaymentMethod
	Contact       ContactDetails
	Card          CardDetails
}

// fieldErrors runs every applicable validator and returns the collected
// failures keyed by field, never stopping at the first.
func (in PlaceOrderInput) fieldErrors(now time.Time) map[string]string {
	fields := map[string]string{}

	if in.PaymentMethod == "" {
		fields["payment_method"] = "Please select a payment method"
	} else if !in.PaymentMethod.IsValid() {
		fields["payment_method"] = "Please select a valid payment method"
	}

	if !validation.Email(in.Contact.Email) {
		fields["email"] = "Please enter a valid email address"
	}
	if !validation.Phone(validation.FormatPhone(in.Contact.Phone)) {
		fields["phone"] = "Please enter a valid phone number"
	}

	if in.PaymentMethod == enums.PaymentMethodCard {
		if !validation.CardNumber(in.Card.Number) {
			fields["card_number"] = "Please enter a valid card number"
		}
		if !validation.Expiry(in.Card.Expiry, now) {
			fields["card_expiry"] = "Please enter a valid expiry date"
		}
		if !validation.CVV(in.Card.CVV) {
			fields["card_cvv"] = "Please enter a valid CVV"
		}
	}

	return fields
}
