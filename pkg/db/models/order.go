package models

import (
	"time"

	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShippingEvent is one entry in an order's shipping history trail.
type ShippingEvent struct {
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
}

// Order is a placed checkout. TotalCents is the post-discount amount, floored
// at zero. TrackingCode carries a unique index; the generator retries on
// collision and the index is the final backstop.
type Order struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"buyer_id"`
	AddressID       uuid.UUID         `gorm:"type:uuid;not null" json:"address_id"`
	OrderDate       time.Time         `gorm:"not null" json:"order_date"`
	Status          enums.OrderStatus `gorm:"size:32;not null;default:'pending';index" json:"status"`
	SubtotalCents   int64             `gorm:"not null" json:"subtotal_cents"`
	DiscountCents   int64             `gorm:"not null;default:0" json:"discount_cents"`
	TotalCents      int64             `gorm:"not null" json:"total_cents"`
	TrackingCode    string            `gorm:"size:16;not null;uniqueIndex" json:"tracking_code"`
	ShippingHistory []ShippingEvent   `gorm:"serializer:json" json:"shipping_history"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	Address *Address    `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}
	return nil
}
