package enums

import "fmt"

// PaymentMethod describes how a shopper intends to settle an order.
type PaymentMethod string

const (
	PaymentMethodJazzCash  PaymentMethod = "jazzcash"
	PaymentMethodEasypaisa PaymentMethod = "easypaisa"
	PaymentMethodCard      PaymentMethod = "card"
	PaymentMethodBank      PaymentMethod = "bank"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodJazzCash,
	PaymentMethodEasypaisa,
	PaymentMethodCard,
	PaymentMethodBank,
}

var paymentMethodDisplayNames = map[PaymentMethod]string{
	PaymentMethodJazzCash:  "JazzCash",
	PaymentMethodEasypaisa: "Easypaisa",
	PaymentMethodCard:      "Credit/Debit Card",
	PaymentMethodBank:      "Bank Transfer",
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// DisplayName returns the customer-facing label for the method.
func (p PaymentMethod) DisplayName() string {
	if name, ok := paymentMethodDisplayNames[p]; ok {
		return name
	}
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
