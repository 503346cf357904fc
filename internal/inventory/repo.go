package inventory

import (
	"context"
	"time"

	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// GetOrCreate returns the ledger row for the product, creating it at zero
// quantity when absent.
func (r *repository) GetOrCreate(ctx context.Context, productID uuid.UUID) (*models.InventoryRecord, error) {
	record := models.InventoryRecord{ProductID: productID}
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		FirstOrCreate(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DecrementIfAvailable subtracts qty in a single conditional UPDATE. The
// boolean result is derived from rows affected, so two concurrent checkouts
// can never both drain the same stock.
func (r *repository) DecrementIfAvailable(ctx context.Context, productID uuid.UUID, qty int64) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE inventory_records
		 SET quantity = quantity - ?, last_updated = ?
		 WHERE product_id = ? AND quantity >= ?`,
		qty, time.Now().UTC(), productID, qty,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Increment adds stock back, used by compensation paths and seller restocks.
func (r *repository) Increment(ctx context.Context, productID uuid.UUID, qty int64) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE inventory_records
		 SET quantity = quantity + ?, last_updated = ?
		 WHERE product_id = ?`,
		qty, time.Now().UTC(), productID,
	).Error
}

// SetQuantity writes an absolute on-hand quantity for the product.
func (r *repository) SetQuantity(ctx context.Context, productID uuid.UUID, qty int64) (*models.InventoryRecord, error) {
	record, err := r.GetOrCreate(ctx, productID)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Model(&models.InventoryRecord{}).
		Where("product_id = ?", productID).
		Updates(map[string]any{
			"quantity":     qty,
			"last_updated": time.Now().UTC(),
		}).Error
	if err != nil {
		return nil, err
	}
	record.Quantity = qty
	return record, nil
}
