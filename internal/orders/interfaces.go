package orders

import (
	"context"

	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	"github.com/Trang-1707/shoppi-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateItems(ctx context.Context, items []models.OrderItem) error
	TrackingCodeExists(ctx context.Context, code string) (bool, error)

	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	FindItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, params pagination.Params, filters OrderFilters) ([]models.Order, int64, error)

	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
	UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status enums.OrderItemStatus) error
}
