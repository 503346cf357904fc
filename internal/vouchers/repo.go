package vouchers

import (
	"context"
	"time"

	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	"github.com/Trang-1707/shoppi-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a vouchers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindPlatformByCode(ctx context.Context, code string) (*models.Voucher, error) {
	var voucher models.Voucher
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&voucher).Error
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

// RedeemPlatformIfUnderLimit advances used_count in one conditional UPDATE so
// concurrent redemptions can never overshoot the limit.
func (r *repository) RedeemPlatformIfUnderLimit(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE vouchers
		 SET used_count = used_count + 1, updated_at = ?
		 WHERE id = ? AND used_count < usage_limit`,
		time.Now().UTC(), id,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) FindSellerByCode(ctx context.Context, code string) (*models.SellerVoucher, error) {
	var voucher models.SellerVoucher
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&voucher).Error
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *repository) FindSellerByID(ctx context.Context, id uuid.UUID) (*models.SellerVoucher, error) {
	var voucher models.SellerVoucher
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&voucher).Error
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *repository) RedeemSellerIfUnderLimit(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE seller_vouchers
		 SET used_count = used_count + 1, updated_at = ?
		 WHERE id = ? AND used_count < usage_limit`,
		time.Now().UTC(), id,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) CreateSeller(ctx context.Context, voucher *models.SellerVoucher) (*models.SellerVoucher, error) {
	if err := r.db.WithContext(ctx).Create(voucher).Error; err != nil {
		return nil, err
	}
	return voucher, nil
}

func (r *repository) UpdateSeller(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.SellerVoucher{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteSeller(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.SellerVoucher{}).Error
}

func (r *repository) ListSeller(ctx context.Context, sellerID uuid.UUID, params pagination.Params) ([]models.SellerVoucher, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).
		Model(&models.SellerVoucher{}).
		Where("seller_id = ?", sellerID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	n := params.Normalize()
	var rows []models.SellerVoucher
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(n.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
