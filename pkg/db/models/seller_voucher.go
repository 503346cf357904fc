package models

import (
	"time"

	dbtypes "github.com/Trang-1707/shoppi-backend/pkg/db/types"
	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SellerVoucher is a shop-scoped discount code. When ApplicableShop is set
// the voucher covers every product of the seller; otherwise it covers only
// the products listed in ApplicableProducts.
type SellerVoucher struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"seller_id"`
	Code               string             `gorm:"size:64;not null;uniqueIndex" json:"code"`
	Kind               enums.DiscountKind `gorm:"size:16;not null" json:"kind"`
	DiscountValue      int64              `gorm:"not null" json:"discount_value"`
	MaxDiscount        int64              `gorm:"not null;default:0" json:"max_discount"`
	MinOrderTotal      int64              `gorm:"not null;default:0" json:"min_order_total"`
	UsageLimit         int64              `gorm:"not null;default:0" json:"usage_limit"`
	UsedCount          int64              `gorm:"not null;default:0" json:"used_count"`
	IsActive           bool               `gorm:"not null" json:"is_active"`
	ApplicableShop     bool               `gorm:"not null;default:false" json:"applicable_shop"`
	ApplicableProducts dbtypes.UUIDArray  `gorm:"type:uuid[]" json:"applicable_products"`
	ExpiresAt          time.Time          `gorm:"not null" json:"expires_at"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func (v *SellerVoucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
