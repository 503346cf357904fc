package vouchers

import (
	"time"

	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	"github.com/Trang-1707/shoppi-backend/pkg/pagination"
	"github.com/google/uuid"
)

// Scope labels which voucher namespace a discount came from.
type Scope string

const (
	ScopePlatform Scope = "platform"
	ScopeSeller   Scope = "seller"
)

// ProductRef is the slice of catalog data the scope check needs.
type ProductRef struct {
	ID       uuid.UUID
	SellerID uuid.UUID
}

// OrderContext carries the order fields the validation chain inspects.
type OrderContext struct {
	SubtotalCents int64
	Products      []ProductRef
}

// Discount is the outcome of a successful validation.
type Discount struct {
	Scope       Scope     `json:"scope"`
	VoucherID   uuid.UUID `json:"voucher_id"`
	Code        string    `json:"code"`
	AmountCents int64     `json:"amount_cents"`
}

// VoucherInfo is the buyer-facing projection returned by a code lookup.
type VoucherInfo struct {
	Scope         Scope              `json:"scope"`
	Code          string             `json:"code"`
	Kind          enums.DiscountKind `json:"kind"`
	DiscountValue int64              `json:"discount_value"`
	MaxDiscount   int64              `json:"max_discount"`
	MinOrderTotal int64              `json:"min_order_total"`
	ExpiresAt     time.Time          `json:"expires_at"`
}

// CreateSellerVoucherInput captures a new seller voucher.
type CreateSellerVoucherInput struct {
	Code               string
	Kind               enums.DiscountKind
	DiscountValue      int64
	MaxDiscount        int64
	MinOrderTotal      int64
	UsageLimit         int64
	ApplicableShop     bool
	ApplicableProducts []uuid.UUID
	ExpiresAt          time.Time
}

// UpdateSellerVoucherInput carries the mutable fields of a seller voucher.
// Nil pointers leave the stored value untouched.
type UpdateSellerVoucherInput struct {
	DiscountValue      *int64
	MaxDiscount        *int64
	MinOrderTotal      *int64
	UsageLimit         *int64
	IsActive           *bool
	ApplicableShop     *bool
	ApplicableProducts *[]uuid.UUID
	ExpiresAt          *time.Time
}

// SellerVoucherList wraps a page of seller vouchers.
type SellerVoucherList struct {
	Vouchers []SellerVoucherSummary `json:"vouchers"`
	Meta     pagination.Meta        `json:"meta"`
}

// SellerVoucherSummary is the list projection of a seller voucher.
type SellerVoucherSummary struct {
	ID            uuid.UUID          `json:"id"`
	Code          string             `json:"code"`
	Kind          enums.DiscountKind `json:"kind"`
	DiscountValue int64              `json:"discount_value"`
	UsageLimit    int64              `json:"usage_limit"`
	UsedCount     int64              `json:"used_count"`
	IsActive      bool               `json:"is_active"`
	ExpiresAt     time.Time          `json:"expires_at"`
}
