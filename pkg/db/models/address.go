package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is a saved shipping destination owned by a buyer.
type Address struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Recipient string    `gorm:"size:255;not null" json:"recipient"`
	Phone     string    `gorm:"size:32;not null" json:"phone"`
	Line1     string    `gorm:"size:500;not null" json:"line1"`
	Ward      string    `gorm:"size:255" json:"ward,omitempty"`
	District  string    `gorm:"size:255" json:"district,omitempty"`
	City      string    `gorm:"size:255;not null" json:"city"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
