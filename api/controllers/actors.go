package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Trang-1707/shoppi-backend/api/middleware"
	pkgerrors "github.com/Trang-1707/shoppi-backend/pkg/errors"
)

func buyerIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.BuyerIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "buyer context required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "invalid buyer context")
	}
	return id, nil
}

func sellerIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.SellerIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "seller context required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "invalid seller context")
	}
	return id, nil
}
