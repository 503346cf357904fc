package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	pkgerrors "github.com/Trang-1707/shoppi-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFinder resolves catalog rows for ownership checks.
type ProductFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes the seller-facing inventory operations.
type Service interface {
	SetSellerQuantity(ctx context.Context, sellerID, productID uuid.UUID, qty int64) (*models.InventoryRecord, error)
	Get(ctx context.Context, productID uuid.UUID) (*models.InventoryRecord, error)
}

type service struct {
	repo     Repository
	products ProductFinder
}

// NewService builds the inventory service with its required dependencies.
func NewService(repo Repository, products ProductFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	return &service{repo: repo, products: products}, nil
}

// SetSellerQuantity writes the absolute on-hand quantity for a product the
// acting seller owns.
func (s *service) SetSellerQuantity(ctx context.Context, sellerID, productID uuid.UUID, qty int64) (*models.InventoryRecord, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if qty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if product.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another seller")
	}

	record, err := s.repo.SetQuantity(ctx, productID, qty)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating inventory")
	}
	return record, nil
}

// Get returns the ledger row for a product, lazily creating it at zero.
func (s *service) Get(ctx context.Context, productID uuid.UUID) (*models.InventoryRecord, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	record, err := s.repo.GetOrCreate(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading inventory")
	}
	return record, nil
}
