package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Product is a seller listing. Prices are stored in integer cents; the stock
// level lives in the companion InventoryRecord row.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"seller_id"`
	Title       string         `gorm:"size:500;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	PriceCents  int64          `gorm:"not null" json:"price_cents"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
	ImageURL    string         `gorm:"size:1000" json:"image_url,omitempty"`
	IsActive    bool           `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Inventory *InventoryRecord `gorm:"foreignKey:ProductID" json:"inventory,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
