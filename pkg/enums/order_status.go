package enums

import "fmt"

// OrderStatus tracks an order through its five fulfillment stages.
// The sequence is strictly linear with no branching.
type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "received"
	OrderStatusValidated OrderStatus = "validated"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

var orderStatusSequence = []OrderStatus{
	OrderStatusReceived,
	OrderStatusValidated,
	OrderStatusPreparing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// OrderStatuses returns the fixed forward sequence of fulfillment stages.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatusSequence))
	copy(out, orderStatusSequence)
	return out
}

// OrderStageCount is the fixed length of every order's stage history.
const OrderStageCount = 5

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range orderStatusSequence {
		if candidate == s {
			return true
		}
	}
	return false
}

// Position returns the zero-based index of the status in the stage sequence,
// or -1 when the status is unknown.
func (s OrderStatus) Position() int {
	for i, candidate := range orderStatusSequence {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Next returns the following stage and true, or the zero value and false when
// the order is already delivered or the status is unknown.
func (s OrderStatus) Next() (OrderStatus, bool) {
	pos := s.Position()
	if pos < 0 || pos >= len(orderStatusSequence)-1 {
		return "", false
	}
	return orderStatusSequence[pos+1], true
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range orderStatusSequence {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
