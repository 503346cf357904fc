package notifications

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeOrderPlaced is the attribute value stamped on checkout events.
const EventTypeOrderPlaced = "order.placed"

// OrderPlacedEvent is published after a checkout commits.
type OrderPlacedEvent struct {
	OrderID      uuid.UUID `json:"order_id"`
	BuyerID      uuid.UUID `json:"buyer_id"`
	TrackingCode string    `json:"tracking_code"`
	TotalCents   int64     `json:"total_cents"`
	OrderDate    time.Time `json:"order_date"`
}
