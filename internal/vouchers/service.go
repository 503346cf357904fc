package vouchers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Trang-1707/shoppi-backend/pkg/db"
	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	dbtypes "github.com/Trang-1707/shoppi-backend/pkg/db/types"
	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	pkgerrors "github.com/Trang-1707/shoppi-backend/pkg/errors"
	"github.com/Trang-1707/shoppi-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFinder resolves catalog rows for scope and ownership checks.
type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// Service exposes voucher validation, redemption and seller voucher CRUD.
type Service interface {
	ValidatePlatform(ctx context.Context, code string, octx OrderContext) (*Discount, error)
	ValidateSeller(ctx context.Context, code string, octx OrderContext) (*Discount, error)
	Redeem(ctx context.Context, tx *gorm.DB, discount Discount) error
	Lookup(ctx context.Context, code string, productID uuid.UUID) (*VoucherInfo, error)

	CreateSellerVoucher(ctx context.Context, sellerID uuid.UUID, input CreateSellerVoucherInput) (*models.SellerVoucher, error)
	GetSellerVoucher(ctx context.Context, sellerID, voucherID uuid.UUID) (*models.SellerVoucher, error)
	ListSellerVouchers(ctx context.Context, sellerID uuid.UUID, params pagination.Params) (*SellerVoucherList, error)
	UpdateSellerVoucher(ctx context.Context, sellerID, voucherID uuid.UUID, input UpdateSellerVoucherInput) (*models.SellerVoucher, error)
	DeleteSellerVoucher(ctx context.Context, sellerID, voucherID uuid.UUID) error
}

type service struct {
	repo     Repository
	products ProductFinder
	now      func() time.Time
}

// NewService builds the voucher service with its required dependencies.
func NewService(repo Repository, products ProductFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vouchers repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	return &service{repo: repo, products: products, now: time.Now}, nil
}

// voucherView is the common shape both namespaces share for the check chain.
type voucherView struct {
	ID            uuid.UUID
	Code          string
	Kind          enums.DiscountKind
	DiscountValue int64
	MaxDiscount   int64
	MinOrderTotal int64
	UsageLimit    int64
	UsedCount     int64
	IsActive      bool
	ExpiresAt     time.Time
}

// ValidatePlatform runs the platform-scope check chain without redeeming.
func (s *service) ValidatePlatform(ctx context.Context, code string, octx OrderContext) (*Discount, error) {
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "voucher code required")
	}

	voucher, err := s.repo.FindPlatformByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "voucher not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading voucher")
	}

	view := voucherView{
		ID:            voucher.ID,
		Code:          voucher.Code,
		Kind:          voucher.Kind,
		DiscountValue: voucher.DiscountValue,
		MaxDiscount:   voucher.MaxDiscount,
		MinOrderTotal: voucher.MinOrderTotal,
		UsageLimit:    voucher.UsageLimit,
		UsedCount:     voucher.UsedCount,
		IsActive:      voucher.IsActive,
		ExpiresAt:     voucher.ExpiresAt,
	}
	if err := s.runCheckChain(view, octx); err != nil {
		return nil, err
	}

	return &Discount{
		Scope:       ScopePlatform,
		VoucherID:   voucher.ID,
		Code:        voucher.Code,
		AmountCents: computeDiscountCents(view.Kind, view.DiscountValue, view.MaxDiscount, octx.SubtotalCents),
	}, nil
}

// ValidateSeller runs the seller-scope chain, including the product scope check.
func (s *service) ValidateSeller(ctx context.Context, code string, octx OrderContext) (*Discount, error) {
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "voucher code required")
	}

	voucher, err := s.repo.FindSellerByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "voucher not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading voucher")
	}

	view := voucherView{
		ID:            voucher.ID,
		Code:          voucher.Code,
		Kind:          voucher.Kind,
		DiscountValue: voucher.DiscountValue,
		MaxDiscount:   voucher.MaxDiscount,
		MinOrderTotal: voucher.MinOrderTotal,
		UsageLimit:    voucher.UsageLimit,
		UsedCount:     voucher.UsedCount,
		IsActive:      voucher.IsActive,
		ExpiresAt:     voucher.ExpiresAt,
	}
	if err := s.runCheckChain(view, octx); err != nil {
		return nil, err
	}

	if !sellerScopeMatches(voucher, octx) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "voucher does not apply to the selected products").
			WithDetails(map[string]any{"code": voucher.Code})
	}

	return &Discount{
		Scope:       ScopeSeller,
		VoucherID:   voucher.ID,
		Code:        voucher.Code,
		AmountCents: computeDiscountCents(view.Kind, view.DiscountValue, view.MaxDiscount, octx.SubtotalCents),
	}, nil
}

// checkUsable applies the order-independent rejections:
// inactive, expired, limit exhausted.
func (s *service) checkUsable(view voucherView) error {
	if !view.IsActive {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "voucher is not active")
	}
	if view.ExpiresAt.Before(s.now()) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "voucher has expired")
	}
	if view.UsedCount >= view.UsageLimit {
		return pkgerrors.New(pkgerrors.CodeConflict, "voucher usage limit reached")
	}
	return nil
}

// runCheckChain applies the rejection order shared by both scopes:
// inactive, expired, limit exhausted, below minimum order.
func (s *service) runCheckChain(view voucherView, octx OrderContext) error {
	if err := s.checkUsable(view); err != nil {
		return err
	}
	if octx.SubtotalCents < view.MinOrderTotal {
		return pkgerrors.New(pkgerrors.CodeConflict, "order total below voucher minimum").
			WithDetails(map[string]any{
				"min_order_total": view.MinOrderTotal,
				"subtotal":        octx.SubtotalCents,
			})
	}
	return nil
}

func sellerScopeMatches(voucher *models.SellerVoucher, octx OrderContext) bool {
	for _, product := range octx.Products {
		if product.SellerID != voucher.SellerID {
			continue
		}
		if voucher.ApplicableShop {
			return true
		}
		if voucher.ApplicableProducts.Contains(product.ID) {
			return true
		}
	}
	return false
}

// computeDiscountCents returns fixed amounts verbatim; percentage amounts are
// subtotal * value / 100 floored to a cent and capped by maxDiscount when set.
func computeDiscountCents(kind enums.DiscountKind, value, maxDiscount, subtotalCents int64) int64 {
	if kind == enums.DiscountKindFixed {
		return value
	}
	amount := decimal.NewFromInt(subtotalCents).
		Mul(decimal.NewFromInt(value)).
		Div(decimal.NewFromInt(100)).
		Floor().
		IntPart()
	if maxDiscount > 0 && amount > maxDiscount {
		amount = maxDiscount
	}
	return amount
}

// Lookup resolves a code in either namespace and runs every check except the
// minimum-order one, which depends on a cart this endpoint never sees. A
// product id scopes the check for seller vouchers.
func (s *service) Lookup(ctx context.Context, code string, productID uuid.UUID) (*VoucherInfo, error) {
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "voucher code required")
	}

	platform, err := s.repo.FindPlatformByCode(ctx, code)
	if err == nil {
		view := voucherView{
			IsActive:   platform.IsActive,
			ExpiresAt:  platform.ExpiresAt,
			UsageLimit: platform.UsageLimit,
			UsedCount:  platform.UsedCount,
		}
		if err := s.checkUsable(view); err != nil {
			return nil, err
		}
		return &VoucherInfo{
			Scope:         ScopePlatform,
			Code:          platform.Code,
			Kind:          platform.Kind,
			DiscountValue: platform.DiscountValue,
			MaxDiscount:   platform.MaxDiscount,
			MinOrderTotal: platform.MinOrderTotal,
			ExpiresAt:     platform.ExpiresAt,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading voucher")
	}

	seller, err := s.repo.FindSellerByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "voucher not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading voucher")
	}

	view := voucherView{
		IsActive:   seller.IsActive,
		ExpiresAt:  seller.ExpiresAt,
		UsageLimit: seller.UsageLimit,
		UsedCount:  seller.UsedCount,
	}
	if err := s.checkUsable(view); err != nil {
		return nil, err
	}

	if productID != uuid.Nil {
		products, err := s.products.FindByIDs(ctx, []uuid.UUID{productID})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
		}
		if len(products) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"product_id": productID})
		}
		octx := OrderContext{Products: []ProductRef{{ID: products[0].ID, SellerID: products[0].SellerID}}}
		if !sellerScopeMatches(seller, octx) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "voucher does not apply to the selected products").
				WithDetails(map[string]any{"code": seller.Code})
		}
	}

	return &VoucherInfo{
		Scope:         ScopeSeller,
		Code:          seller.Code,
		Kind:          seller.Kind,
		DiscountValue: seller.DiscountValue,
		MaxDiscount:   seller.MaxDiscount,
		MinOrderTotal: seller.MinOrderTotal,
		ExpiresAt:     seller.ExpiresAt,
	}, nil
}

// Redeem advances the voucher's used count inside the caller's transaction.
// Hitting the usage limit at this point surfaces as a conflict.
func (s *service) Redeem(ctx context.Context, tx *gorm.DB, discount Discount) error {
	repo := s.repo.WithTx(tx)

	var (
		ok  bool
		err error
	)
	switch discount.Scope {
	case ScopePlatform:
		ok, err = repo.RedeemPlatformIfUnderLimit(ctx, discount.VoucherID)
	case ScopeSeller:
		ok, err = repo.RedeemSellerIfUnderLimit(ctx, discount.VoucherID)
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown voucher scope")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "redeeming voucher")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeConflict, "voucher usage limit reached").
			WithDetails(map[string]any{"code": discount.Code})
	}
	return nil
}

// CreateSellerVoucher registers a new voucher for the acting seller.
func (s *service) CreateSellerVoucher(ctx context.Context, sellerID uuid.UUID, input CreateSellerVoucherInput) (*models.SellerVoucher, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id required")
	}
	if input.Code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "voucher code required")
	}
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid discount kind")
	}
	if input.DiscountValue <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount value must be positive")
	}
	if input.UsageLimit <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "usage limit must be positive")
	}
	if input.ExpiresAt.Before(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiry must be in the future")
	}

	applicable := input.ApplicableProducts
	if input.ApplicableShop {
		// shop-wide vouchers carry an empty product set
		applicable = nil
	} else {
		if len(applicable) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "applicable products required for a non-shop-wide voucher")
		}
		if err := s.verifyProductOwnership(ctx, sellerID, applicable); err != nil {
			return nil, err
		}
	}

	voucher := &models.SellerVoucher{
		SellerID:           sellerID,
		Code:               input.Code,
		Kind:               input.Kind,
		DiscountValue:      input.DiscountValue,
		MaxDiscount:        input.MaxDiscount,
		MinOrderTotal:      input.MinOrderTotal,
		UsageLimit:         input.UsageLimit,
		IsActive:           true,
		ApplicableShop:     input.ApplicableShop,
		ApplicableProducts: dbtypes.UUIDArray(applicable),
		ExpiresAt:          input.ExpiresAt,
	}

	created, err := s.repo.CreateSeller(ctx, voucher)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_seller_vouchers_code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "voucher code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating voucher")
	}
	return created, nil
}

func (s *service) verifyProductOwnership(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) error {
	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading products")
	}
	byID := make(map[uuid.UUID]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	for _, id := range ids {
		product, ok := byID[id]
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"product_id": id})
		}
		if product.SellerID != sellerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another seller")
		}
	}
	return nil
}

// GetSellerVoucher loads one voucher owned by the acting seller.
func (s *service) GetSellerVoucher(ctx context.Context, sellerID, voucherID uuid.UUID) (*models.SellerVoucher, error) {
	voucher, err := s.repo.FindSellerByID(ctx, voucherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "voucher not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading voucher")
	}
	if voucher.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "voucher belongs to another seller")
	}
	return voucher, nil
}

// ListSellerVouchers returns one page of the acting seller's vouchers.
func (s *service) ListSellerVouchers(ctx context.Context, sellerID uuid.UUID, params pagination.Params) (*SellerVoucherList, error) {
	rows, total, err := s.repo.ListSeller(ctx, sellerID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing vouchers")
	}

	summaries := make([]SellerVoucherSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, SellerVoucherSummary{
			ID:            row.ID,
			Code:          row.Code,
			Kind:          row.Kind,
			DiscountValue: row.DiscountValue,
			UsageLimit:    row.UsageLimit,
			UsedCount:     row.UsedCount,
			IsActive:      row.IsActive,
			ExpiresAt:     row.ExpiresAt,
		})
	}
	return &SellerVoucherList{
		Vouchers: summaries,
		Meta:     pagination.NewMeta(params, total),
	}, nil
}

// UpdateSellerVoucher applies the provided partial update.
func (s *service) UpdateSellerVoucher(ctx context.Context, sellerID, voucherID uuid.UUID, input UpdateSellerVoucherInput) (*models.SellerVoucher, error) {
	voucher, err := s.GetSellerVoucher(ctx, sellerID, voucherID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.DiscountValue != nil {
		if *input.DiscountValue <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount value must be positive")
		}
		updates["discount_value"] = *input.DiscountValue
	}
	if input.MaxDiscount != nil {
		updates["max_discount"] = *input.MaxDiscount
	}
	if input.MinOrderTotal != nil {
		updates["min_order_total"] = *input.MinOrderTotal
	}
	if input.UsageLimit != nil {
		if *input.UsageLimit <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "usage limit must be positive")
		}
		updates["usage_limit"] = *input.UsageLimit
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.ExpiresAt != nil {
		updates["expires_at"] = *input.ExpiresAt
	}

	applicableShop := voucher.ApplicableShop
	if input.ApplicableShop != nil {
		applicableShop = *input.ApplicableShop
		updates["applicable_shop"] = applicableShop
	}
	if applicableShop {
		updates["applicable_products"] = dbtypes.UUIDArray(nil)
	} else if input.ApplicableProducts != nil {
		ids := *input.ApplicableProducts
		if len(ids) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "applicable products required for a non-shop-wide voucher")
		}
		if err := s.verifyProductOwnership(ctx, sellerID, ids); err != nil {
			return nil, err
		}
		updates["applicable_products"] = dbtypes.UUIDArray(ids)
	}

	if len(updates) == 0 {
		return voucher, nil
	}
	if err := s.repo.UpdateSeller(ctx, voucherID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating voucher")
	}
	return s.repo.FindSellerByID(ctx, voucherID)
}

// DeleteSellerVoucher removes one voucher owned by the acting seller.
func (s *service) DeleteSellerVoucher(ctx context.Context, sellerID, voucherID uuid.UUID) error {
	if _, err := s.GetSellerVoucher(ctx, sellerID, voucherID); err != nil {
		return err
	}
	if err := s.repo.DeleteSeller(ctx, voucherID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting voucher")
	}
	return nil
}
