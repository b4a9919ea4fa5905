package enums

import "fmt"

// PaymentChannelKind identifies a mobile payment channel advertised by the store.
// Channels are informational only; no payment is processed through them.
type PaymentChannelKind string

const (
	PaymentChannelYape     PaymentChannelKind = "yape"
	PaymentChannelPlin     PaymentChannelKind = "plin"
	PaymentChannelTransfer PaymentChannelKind = "transfer"
	PaymentChannelCash     PaymentChannelKind = "cash"
)

var validPaymentChannelKinds = []PaymentChannelKind{
	PaymentChannelYape,
	PaymentChannelPlin,
	PaymentChannelTransfer,
	PaymentChannelCash,
}

// String implements fmt.Stringer.
func (k PaymentChannelKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known PaymentChannelKind.
func (k PaymentChannelKind) IsValid() bool {
	for _, candidate := range validPaymentChannelKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParsePaymentChannelKind converts raw input into a PaymentChannelKind.
func ParsePaymentChannelKind(value string) (PaymentChannelKind, error) {
	for _, candidate := range validPaymentChannelKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment channel %q", value)
}
