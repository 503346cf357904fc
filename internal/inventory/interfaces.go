package inventory

import (
	"context"

	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the inventory ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetOrCreate(ctx context.Context, productID uuid.UUID) (*models.InventoryRecord, error)
	DecrementIfAvailable(ctx context.Context, productID uuid.UUID, qty int64) (bool, error)
	Increment(ctx context.Context, productID uuid.UUID, qty int64) error
	SetQuantity(ctx context.Context, productID uuid.UUID, qty int64) (*models.InventoryRecord, error)
}
