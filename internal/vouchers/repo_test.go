package vouchers

import (
	"context"
	"testing"
	"time"

	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	"github.com/google/uuid"
)

func TestRedeemPlatformStopsAtLimit(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	voucher := models.Voucher{
		Code:          "LIMIT2",
		Kind:          enums.DiscountKindFixed,
		DiscountValue: 100,
		UsageLimit:    2,
		IsActive:      true,
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	succeeded := 0
	for i := 0; i < 4; i++ {
		ok, err := repo.RedeemPlatformIfUnderLimit(ctx, voucher.ID)
		if err != nil {
			t.Fatalf("redeem %d: %v", i, err)
		}
		if ok {
			succeeded++
		}
	}
	if succeeded != 2 {
		t.Fatalf("expected exactly 2 redemptions against limit 2, got %d", succeeded)
	}

	var loaded models.Voucher
	if err := db.First(&loaded, "id = ?", voucher.ID).Error; err != nil {
		t.Fatalf("load voucher: %v", err)
	}
	if loaded.UsedCount != 2 {
		t.Fatalf("used count overshot the limit: %d", loaded.UsedCount)
	}
}

func TestRedeemSellerStopsAtLimit(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	voucher := models.SellerVoucher{
		SellerID:       uuid.New(),
		Code:           "SLIMIT1",
		Kind:           enums.DiscountKindFixed,
		DiscountValue:  100,
		UsageLimit:     1,
		IsActive:       true,
		ApplicableShop: true,
		ExpiresAt:      time.Now().Add(time.Hour),
	}
	if err := db.Create(&voucher).Error; err != nil {
		t.Fatalf("seed voucher: %v", err)
	}

	ok, err := repo.RedeemSellerIfUnderLimit(ctx, voucher.ID)
	if err != nil || !ok {
		t.Fatalf("first redeem should succeed, got ok=%v err=%v", ok, err)
	}
	ok, err = repo.RedeemSellerIfUnderLimit(ctx, voucher.ID)
	if err != nil {
		t.Fatalf("second redeem: %v", err)
	}
	if ok {
		t.Fatal("second redeem past the limit should fail")
	}
}
