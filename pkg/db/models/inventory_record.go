package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryRecord holds the sellable stock for one product. Quantity is only
// ever changed through conditional UPDATEs so concurrent checkouts cannot
// drive it negative.
type InventoryRecord struct {
	ProductID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id"`
	Quantity    int64     `gorm:"not null;default:0" json:"quantity"`
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}
