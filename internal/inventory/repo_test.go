package inventory

import (
	"context"
	"testing"

	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGetOrCreateLazilyCreatesAtZero(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	product := uuid.New()

	record, err := repo.GetOrCreate(ctx, product)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if record.Quantity != 0 {
		t.Fatalf("expected fresh record at zero, got %d", record.Quantity)
	}

	// second call returns the same row, not a duplicate
	again, err := repo.GetOrCreate(ctx, product)
	if err != nil {
		t.Fatalf("get or create again: %v", err)
	}
	if again.ProductID != record.ProductID {
		t.Fatalf("expected same record, got %v and %v", record.ProductID, again.ProductID)
	}
}

func TestDecrementIfAvailable(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	product := uuid.New()

	if err := db.Create(&models.InventoryRecord{ProductID: product, Quantity: 5}).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	ok, err := repo.DecrementIfAvailable(ctx, product, 3)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if !ok {
		t.Fatal("expected decrement within stock to succeed")
	}

	// only 2 left; a second request for 3 must be rejected by the same UPDATE
	ok, err = repo.DecrementIfAvailable(ctx, product, 3)
	if err != nil {
		t.Fatalf("decrement past stock: %v", err)
	}
	if ok {
		t.Fatal("expected decrement past stock to fail")
	}

	var record models.InventoryRecord
	if err := db.First(&record, "product_id = ?", product).Error; err != nil {
		t.Fatalf("load record: %v", err)
	}
	if record.Quantity != 2 {
		t.Fatalf("expected quantity 2 after one successful decrement, got %d", record.Quantity)
	}
}

func TestDecrementNeverOversells(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	product := uuid.New()

	if err := db.Create(&models.InventoryRecord{ProductID: product, Quantity: 5}).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	succeeded := 0
	for i := 0; i < 2; i++ {
		ok, err := repo.DecrementIfAvailable(ctx, product, 3)
		if err != nil {
			t.Fatalf("decrement %d: %v", i, err)
		}
		if ok {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one of two 3-unit requests against 5 units to succeed, got %d", succeeded)
	}

	var record models.InventoryRecord
	if err := db.First(&record, "product_id = ?", product).Error; err != nil {
		t.Fatalf("load record: %v", err)
	}
	if record.Quantity < 0 {
		t.Fatalf("quantity went negative: %d", record.Quantity)
	}
}

func TestIncrementAndSetQuantity(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	product := uuid.New()

	record, err := repo.SetQuantity(ctx, product, 7)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if record.Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", record.Quantity)
	}

	if err := repo.Increment(ctx, product, 3); err != nil {
		t.Fatalf("increment: %v", err)
	}

	var loaded models.InventoryRecord
	if err := db.First(&loaded, "product_id = ?", product).Error; err != nil {
		t.Fatalf("load record: %v", err)
	}
	if loaded.Quantity != 10 {
		t.Fatalf("expected quantity 10, got %d", loaded.Quantity)
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.InventoryRecord{}, &models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
