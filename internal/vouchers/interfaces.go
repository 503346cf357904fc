package vouchers

import (
	"context"

	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	"github.com/Trang-1707/shoppi-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for both voucher namespaces.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindPlatformByCode(ctx context.Context, code string) (*models.Voucher, error)
	RedeemPlatformIfUnderLimit(ctx context.Context, id uuid.UUID) (bool, error)

	FindSellerByCode(ctx context.Context, code string) (*models.SellerVoucher, error)
	FindSellerByID(ctx context.Context, id uuid.UUID) (*models.SellerVoucher, error)
	RedeemSellerIfUnderLimit(ctx context.Context, id uuid.UUID) (bool, error)
	CreateSeller(ctx context.Context, voucher *models.SellerVoucher) (*models.SellerVoucher, error)
	UpdateSeller(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteSeller(ctx context.Context, id uuid.UUID) error
	ListSeller(ctx context.Context, sellerID uuid.UUID, params pagination.Params) ([]models.SellerVoucher, int64, error)
}
