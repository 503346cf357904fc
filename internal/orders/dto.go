package orders

import (
	"time"

	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	"github.com/Trang-1707/shoppi-backend/pkg/pagination"
	"github.com/google/uuid"
)

// OrderFilters describe the inputs supported by the buyer order list.
type OrderFilters struct {
	Status   *enums.OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// OrderSummary exposes the aggregated fields returned in the list.
type OrderSummary struct {
	ID           uuid.UUID         `json:"id"`
	OrderDate    time.Time         `json:"order_date"`
	Status       enums.OrderStatus `json:"status"`
	TotalCents   int64             `json:"total_cents"`
	TrackingCode string            `json:"tracking_code"`
	TotalItems   int               `json:"total_items"`
}

// OrderList wraps the paginated orders plus page metadata.
type OrderList struct {
	Orders []OrderSummary  `json:"orders"`
	Meta   pagination.Meta `json:"meta"`
}

// UpdateItemStatusInput carries a seller's fulfillment transition.
type UpdateItemStatusInput struct {
	ItemID   uuid.UUID
	SellerID uuid.UUID
	Status   string
}
