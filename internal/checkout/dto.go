package checkout

import (
	"github.com/google/uuid"
)

// SelectedItem is one product line of a checkout request.
type SelectedItem struct {
	ProductID uuid.UUID
	Quantity  int64
}

// PlaceOrderInput carries everything the orchestrator needs for one checkout.
type PlaceOrderInput struct {
	BuyerID          uuid.UUID
	AddressID        uuid.UUID
	Items            []SelectedItem
	CouponCode       string
	SellerCouponCode string
}

// PlaceOrderResult is returned to the buyer on success.
type PlaceOrderResult struct {
	OrderID       uuid.UUID `json:"order_id"`
	TrackingCode  string    `json:"tracking_code"`
	SubtotalCents int64     `json:"subtotal_cents"`
	DiscountCents int64     `json:"discount_cents"`
	TotalCents    int64     `json:"total_cents"`
}
