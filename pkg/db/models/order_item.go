package models

import (
	"time"

	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem is one product line of an order. UnitPriceCents snapshots the
// catalog price at checkout time.
type OrderItem struct {
	ID             uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID        uuid.UUID             `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID      uuid.UUID             `gorm:"type:uuid;not null;index" json:"product_id"`
	SellerID       uuid.UUID             `gorm:"type:uuid;not null;index" json:"seller_id"`
	Quantity       int64                 `gorm:"not null" json:"quantity"`
	UnitPriceCents int64                 `gorm:"not null" json:"unit_price_cents"`
	Status         enums.OrderItemStatus `gorm:"size:32;not null;default:'pending'" json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
