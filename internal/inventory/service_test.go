package inventory

import (
	"context"
	"testing"

	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	pkgerrors "github.com/Trang-1707/shoppi-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestSetSellerQuantity(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	seller := uuid.New()
	product := models.Product{SellerID: seller, Title: "Canvas Tote", PriceCents: 1500}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	svc, err := NewService(repo, productsStub{db: db})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	record, err := svc.SetSellerQuantity(context.Background(), seller, product.ID, 12)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if record.Quantity != 12 {
		t.Fatalf("expected quantity 12, got %d", record.Quantity)
	}
}

func TestSetSellerQuantityRejectsForeignProduct(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	product := models.Product{SellerID: uuid.New(), Title: "Mug", PriceCents: 900}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	svc, err := NewService(repo, productsStub{db: db})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.SetSellerQuantity(context.Background(), uuid.New(), product.ID, 3)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestSetSellerQuantityRejectsNegative(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), productsStub{db: db})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.SetSellerQuantity(context.Background(), uuid.New(), uuid.New(), -1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type productsStub struct {
	db *gorm.DB
}

func (p productsStub) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
