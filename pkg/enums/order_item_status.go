package enums

import "fmt"

// OrderItemStatus tracks the per-line fulfillment state advanced by sellers.
// It shares the order status domain minus the aggregate-only "processing".
type OrderItemStatus string

const (
	OrderItemStatusPending      OrderItemStatus = "pending"
	OrderItemStatusShipping     OrderItemStatus = "shipping"
	OrderItemStatusShipped      OrderItemStatus = "shipped"
	OrderItemStatusFailedToShip OrderItemStatus = "failed_to_ship"
	OrderItemStatusRejected     OrderItemStatus = "rejected"
)

var validOrderItemStatuses = []OrderItemStatus{
	OrderItemStatusPending,
	OrderItemStatusShipping,
	OrderItemStatusShipped,
	OrderItemStatusFailedToShip,
	OrderItemStatusRejected,
}

// String implements fmt.Stringer.
func (o OrderItemStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderItemStatus.
func (o OrderItemStatus) IsValid() bool {
	for _, candidate := range validOrderItemStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderItemStatus converts raw input into an OrderItemStatus.
func ParseOrderItemStatus(value string) (OrderItemStatus, error) {
	for _, candidate := range validOrderItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order item status %q", value)
}
