package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Trang-1707/shoppi-backend/api/responses"
	"github.com/Trang-1707/shoppi-backend/api/validators"
	"github.com/Trang-1707/shoppi-backend/internal/vouchers"
	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	pkgerrors "github.com/Trang-1707/shoppi-backend/pkg/errors"
	"github.com/Trang-1707/shoppi-backend/pkg/logger"
	"github.com/Trang-1707/shoppi-backend/pkg/pagination"
)

// VoucherLookup resolves a code for the buyer without redeeming it.
func VoucherLookup(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "voucher service unavailable"))
			return
		}

		code := strings.TrimSpace(chi.URLParam(r, "code"))
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "voucher code is required"))
			return
		}
		productID, err := validators.ParseQueryUUID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		info, err := svc.Lookup(r.Context(), code, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, info)
	}
}

type createSellerVoucherRequest struct {
	Code               string      `json:"code" validate:"required,min=3,max=32"`
	Kind               string      `json:"kind" validate:"required,oneof=fixed percentage"`
	DiscountValue      int64       `json:"discount_value" validate:"required,gt=0"`
	MaxDiscount        int64       `json:"max_discount" validate:"min=0"`
	MinOrderTotal      int64       `json:"min_order_total" validate:"min=0"`
	UsageLimit         int64       `json:"usage_limit" validate:"required,gt=0"`
	ApplicableShop     bool        `json:"applicable_shop"`
	ApplicableProducts []uuid.UUID `json:"applicable_products,omitempty"`
	ExpiresAt          time.Time   `json:"expires_at" validate:"required"`
}

// CreateSellerVoucher registers a new voucher for the acting seller.
func CreateSellerVoucher(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "voucher service unavailable"))
			return
		}

		sellerID, err := sellerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createSellerVoucherRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := enums.ParseDiscountKind(payload.Kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid discount kind"))
			return
		}

		voucher, err := svc.CreateSellerVoucher(r.Context(), sellerID, vouchers.CreateSellerVoucherInput{
			Code:               payload.Code,
			Kind:               kind,
			DiscountValue:      payload.DiscountValue,
			MaxDiscount:        payload.MaxDiscount,
			MinOrderTotal:      payload.MinOrderTotal,
			UsageLimit:         payload.UsageLimit,
			ApplicableShop:     payload.ApplicableShop,
			ApplicableProducts: payload.ApplicableProducts,
			ExpiresAt:          payload.ExpiresAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, voucher)
	}
}

// ListSellerVouchers returns one page of the acting seller's vouchers.
func ListSellerVouchers(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "voucher service unavailable"))
			return
		}

		sellerID, err := sellerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListSellerVouchers(r.Context(), sellerID, pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetSellerVoucher returns one voucher owned by the acting seller.
func GetSellerVoucher(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "voucher service unavailable"))
			return
		}

		sellerID, voucherID, err := sellerVoucherIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		voucher, err := svc.GetSellerVoucher(r.Context(), sellerID, voucherID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, voucher)
	}
}

type updateSellerVoucherRequest struct {
	DiscountValue      *int64       `json:"discount_value,omitempty" validate:"omitempty,gt=0"`
	MaxDiscount        *int64       `json:"max_discount,omitempty" validate:"omitempty,min=0"`
	MinOrderTotal      *int64       `json:"min_order_total,omitempty" validate:"omitempty,min=0"`
	UsageLimit         *int64       `json:"usage_limit,omitempty" validate:"omitempty,gt=0"`
	IsActive           *bool        `json:"is_active,omitempty"`
	ApplicableShop     *bool        `json:"applicable_shop,omitempty"`
	ApplicableProducts *[]uuid.UUID `json:"applicable_products,omitempty"`
	ExpiresAt          *time.Time   `json:"expires_at,omitempty"`
}

// UpdateSellerVoucher applies a partial update to one of the seller's vouchers.
func UpdateSellerVoucher(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "voucher service unavailable"))
			return
		}

		sellerID, voucherID, err := sellerVoucherIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateSellerVoucherRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		voucher, err := svc.UpdateSellerVoucher(r.Context(), sellerID, voucherID, vouchers.UpdateSellerVoucherInput{
			DiscountValue:      payload.DiscountValue,
			MaxDiscount:        payload.MaxDiscount,
			MinOrderTotal:      payload.MinOrderTotal,
			UsageLimit:         payload.UsageLimit,
			IsActive:           payload.IsActive,
			ApplicableShop:     payload.ApplicableShop,
			ApplicableProducts: payload.ApplicableProducts,
			ExpiresAt:          payload.ExpiresAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, voucher)
	}
}

// DeleteSellerVoucher removes one of the seller's vouchers.
func DeleteSellerVoucher(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "voucher service unavailable"))
			return
		}

		sellerID, voucherID, err := sellerVoucherIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteSellerVoucher(r.Context(), sellerID, voucherID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func sellerVoucherIDs(r *http.Request) (sellerID, voucherID uuid.UUID, err error) {
	sellerID, err = sellerIDFromRequest(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	raw := strings.TrimSpace(chi.URLParam(r, "voucherId"))
	if raw == "" {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "voucher id is required")
	}
	voucherID, err = uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid voucher id")
	}
	return sellerID, voucherID, nil
}
