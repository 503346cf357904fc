package models

import (
	"time"

	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Voucher is a platform-wide discount code applicable to any order.
//
// DiscountValue is cents for fixed vouchers and a whole percent for
// percentage vouchers. UsedCount is only ever advanced by the conditional
// redeem UPDATE, so UsageLimit can never be overshot.
type Voucher struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Code          string             `gorm:"size:64;not null;uniqueIndex" json:"code"`
	Kind          enums.DiscountKind `gorm:"size:16;not null" json:"kind"`
	DiscountValue int64              `gorm:"not null" json:"discount_value"`
	MaxDiscount   int64              `gorm:"not null;default:0" json:"max_discount"`
	MinOrderTotal int64              `gorm:"not null;default:0" json:"min_order_total"`
	UsageLimit    int64              `gorm:"not null;default:0" json:"usage_limit"`
	UsedCount     int64              `gorm:"not null;default:0" json:"used_count"`
	IsActive      bool               `gorm:"not null" json:"is_active"`
	ExpiresAt     time.Time          `gorm:"not null" json:"expires_at"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
