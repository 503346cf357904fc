package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Trang-1707/shoppi-backend/api/responses"
	"github.com/Trang-1707/shoppi-backend/api/validators"
	"github.com/Trang-1707/shoppi-backend/internal/inventory"
	pkgerrors "github.com/Trang-1707/shoppi-backend/pkg/errors"
	"github.com/Trang-1707/shoppi-backend/pkg/logger"
)

type setInventoryRequest struct {
	Quantity *int64 `json:"quantity" validate:"required,min=0"`
}

// SetSellerInventory writes the absolute on-hand quantity for a product the
// acting seller owns.
func SetSellerInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		sellerID, err := sellerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rawProductID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if rawProductID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}
		productID, err := uuid.Parse(rawProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload setInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.SetSellerQuantity(r.Context(), sellerID, productID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}
