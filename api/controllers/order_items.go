package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Trang-1707/shoppi-backend/api/responses"
	"github.com/Trang-1707/shoppi-backend/api/validators"
	internalorders "github.com/Trang-1707/shoppi-backend/internal/orders"
	pkgerrors "github.com/Trang-1707/shoppi-backend/pkg/errors"
	"github.com/Trang-1707/shoppi-backend/pkg/logger"
)

type updateItemStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderItemStatus applies a seller's fulfillment transition to one line.
func UpdateOrderItemStatus(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		sellerID, err := sellerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rawItemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if rawItemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order item id is required"))
			return
		}
		itemID, err := uuid.Parse(rawItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order item id"))
			return
		}

		var payload updateItemStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateItemStatus(r.Context(), internalorders.UpdateItemStatusInput{
			ItemID:   itemID,
			SellerID: sellerID,
			Status:   payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
