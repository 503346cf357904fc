package orders

import (
	"context"
	"testing"
	"time"

	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	pkgerrors "github.com/Trang-1707/shoppi-backend/pkg/errors"
	"github.com/Trang-1707/shoppi-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSyncStatusAllShipped(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	order := seedOrder(t, db, enums.OrderStatusPending)
	seedItem(t, db, order.ID, enums.OrderItemStatusShipped)
	seedItem(t, db, order.ID, enums.OrderItemStatusShipped)

	changed, err := svc.SyncStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !changed {
		t.Fatal("expected first sync to report a change")
	}

	var loaded models.Order
	if err := db.First(&loaded, "id = ?", order.ID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if loaded.Status != enums.OrderStatusShipped {
		t.Fatalf("expected shipped, got %s", loaded.Status)
	}

	// idempotent: re-running is a no-op and reports false
	changed, err = svc.SyncStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if changed {
		t.Fatal("expected second sync to be a no-op")
	}

	// shipping history is only written at creation, never by sync
	if err := db.First(&loaded, "id = ?", order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if len(loaded.ShippingHistory) != 1 {
		t.Fatalf("expected untouched shipping history, got %d entries", len(loaded.ShippingHistory))
	}
}

func TestSyncStatusMixedItemsDoesNothing(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	order := seedOrder(t, db, enums.OrderStatusPending)
	seedItem(t, db, order.ID, enums.OrderItemStatusShipped)
	seedItem(t, db, order.ID, enums.OrderItemStatusPending)

	changed, err := svc.SyncStatus(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if changed {
		t.Fatal("expected no change with a pending item")
	}

	var loaded models.Order
	if err := db.First(&loaded, "id = ?", order.ID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if loaded.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending, got %s", loaded.Status)
	}
}

func TestSyncStatusNoItemsIsNoop(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	order := seedOrder(t, db, enums.OrderStatusPending)
	changed, err := svc.SyncStatus(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if changed {
		t.Fatal("expected no change for an order without items")
	}
}

func TestUpdateItemStatus(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	order := seedOrder(t, db, enums.OrderStatusPending)
	first := seedItem(t, db, order.ID, enums.OrderItemStatusPending)
	second := seedItem(t, db, order.ID, enums.OrderItemStatusShipped)

	// invalid status string rejected up front
	_, err := svc.UpdateItemStatus(ctx, UpdateItemStatusInput{ItemID: first.ID, Status: "teleported"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	// another seller cannot advance the line
	_, err = svc.UpdateItemStatus(ctx, UpdateItemStatusInput{ItemID: first.ID, SellerID: uuid.New(), Status: "shipped"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}

	// moving the last pending line to shipped flips the order
	updated, err := svc.UpdateItemStatus(ctx, UpdateItemStatusInput{ItemID: first.ID, SellerID: first.SellerID, Status: "shipped"})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Status != enums.OrderItemStatusShipped {
		t.Fatalf("expected shipped item, got %s", updated.Status)
	}

	var loaded models.Order
	if err := db.First(&loaded, "id = ?", order.ID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if loaded.Status != enums.OrderStatusShipped {
		t.Fatalf("expected order shipped after both items shipped, got %s", loaded.Status)
	}
	_ = second
}

func TestUpdateItemStatusNonShippedDoesNotSync(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	order := seedOrder(t, db, enums.OrderStatusPending)
	item := seedItem(t, db, order.ID, enums.OrderItemStatusPending)

	if _, err := svc.UpdateItemStatus(context.Background(), UpdateItemStatusInput{
		ItemID:   item.ID,
		SellerID: item.SellerID,
		Status:   "failed_to_ship",
	}); err != nil {
		t.Fatalf("update item: %v", err)
	}

	var loaded models.Order
	if err := db.First(&loaded, "id = ?", order.ID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if loaded.Status != enums.OrderStatusPending {
		t.Fatalf("expected order untouched, got %s", loaded.Status)
	}
}

func TestGetOrderResyncsAndScopes(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	order := seedOrder(t, db, enums.OrderStatusPending)
	seedItem(t, db, order.ID, enums.OrderItemStatusShipped)

	detail, err := svc.GetOrder(ctx, order.BuyerID, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if detail.Status != enums.OrderStatusShipped {
		t.Fatalf("expected re-synced shipped status, got %s", detail.Status)
	}

	// a different buyer sees not-found, not forbidden
	_, err = svc.GetOrder(ctx, uuid.New(), order.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign buyer, got %v", err)
	}
}

func TestListOrdersFiltersAndPaginates(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	buyer := uuid.New()

	for i := 0; i < 3; i++ {
		order := models.Order{
			BuyerID:       buyer,
			AddressID:     uuid.New(),
			Status:        enums.OrderStatusPending,
			SubtotalCents: 1000,
			TotalCents:    1000,
			TrackingCode:  "LIST" + uuid.NewString()[:6],
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}
	shippedOrder := seedOrder(t, db, enums.OrderStatusPending)
	shippedOrder.BuyerID = buyer
	if err := db.Model(&models.Order{}).Where("id = ?", shippedOrder.ID).Update("buyer_id", buyer).Error; err != nil {
		t.Fatalf("rebind order: %v", err)
	}
	seedItem(t, db, shippedOrder.ID, enums.OrderItemStatusShipped)

	list, err := svc.ListOrders(ctx, buyer, pagination.Params{Page: 1, Limit: 2}, OrderFilters{})
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(list.Orders) != 2 {
		t.Fatalf("expected 2 orders on page, got %d", len(list.Orders))
	}
	if list.Meta.Total != 4 || list.Meta.Pages != 2 {
		t.Fatalf("unexpected meta: %+v", list.Meta)
	}

	// an unfiltered list re-syncs and persists the shipped status
	if _, err := svc.ListOrders(ctx, buyer, pagination.Params{}, OrderFilters{}); err != nil {
		t.Fatalf("unfiltered list: %v", err)
	}

	status := enums.OrderStatusShipped
	filtered, err := svc.ListOrders(ctx, buyer, pagination.Params{}, OrderFilters{Status: &status})
	if err != nil {
		t.Fatalf("list shipped: %v", err)
	}
	if len(filtered.Orders) != 1 {
		t.Fatalf("expected exactly the synced order, got %d", len(filtered.Orders))
	}
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func seedOrder(t *testing.T, db *gorm.DB, status enums.OrderStatus) *models.Order {
	t.Helper()
	order := models.Order{
		BuyerID:       uuid.New(),
		AddressID:     uuid.New(),
		Status:        status,
		SubtotalCents: 5000,
		TotalCents:    5000,
		TrackingCode:  "T" + uuid.NewString()[:9],
		ShippingHistory: []models.ShippingEvent{
			{Status: "created", Date: time.Now().UTC()},
		},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return &order
}

func seedItem(t *testing.T, db *gorm.DB, orderID uuid.UUID, status enums.OrderItemStatus) *models.OrderItem {
	t.Helper()
	item := models.OrderItem{
		OrderID:        orderID,
		ProductID:      uuid.New(),
		SellerID:       uuid.New(),
		Quantity:       1,
		UnitPriceCents: 2500,
		Status:         status,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return &item
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.Product{},
		&models.Address{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
