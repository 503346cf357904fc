package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	checkoutsvc "github.com/Trang-1707/shoppi-backend/internal/checkout"
	internalorders "github.com/Trang-1707/shoppi-backend/internal/orders"
	"github.com/Trang-1707/shoppi-backend/internal/vouchers"
	"github.com/Trang-1707/shoppi-backend/pkg/config"
	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	pkgerrors "github.com/Trang-1707/shoppi-backend/pkg/errors"
	"github.com/Trang-1707/shoppi-backend/pkg/logger"
	"github.com/Trang-1707/shoppi-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubCheckoutService struct {
	result *checkoutsvc.PlaceOrderResult
}

func (s stubCheckoutService) PlaceOrder(_ context.Context, _ checkoutsvc.PlaceOrderInput) (*checkoutsvc.PlaceOrderResult, error) {
	if s.result != nil {
		return s.result, nil
	}
	return &checkoutsvc.PlaceOrderResult{OrderID: uuid.New(), TrackingCode: "AB12CD34EF"}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) SyncStatus(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}

func (stubOrdersService) UpdateItemStatus(_ context.Context, input internalorders.UpdateItemStatusInput) (*models.OrderItem, error) {
	return &models.OrderItem{ID: input.ItemID}, nil
}

func (stubOrdersService) GetOrder(_ context.Context, _, orderID uuid.UUID) (*models.Order, error) {
	return &models.Order{ID: orderID}, nil
}

func (stubOrdersService) ListOrders(context.Context, uuid.UUID, pagination.Params, internalorders.OrderFilters) (*internalorders.OrderList, error) {
	return &internalorders.OrderList{}, nil
}

type stubVoucherService struct{}

func (stubVoucherService) ValidatePlatform(context.Context, string, vouchers.OrderContext) (*vouchers.Discount, error) {
	panic("unimplemented")
}

func (stubVoucherService) ValidateSeller(context.Context, string, vouchers.OrderContext) (*vouchers.Discount, error) {
	panic("unimplemented")
}

func (stubVoucherService) Redeem(context.Context, *gorm.DB, vouchers.Discount) error {
	panic("unimplemented")
}

func (stubVoucherService) Lookup(_ context.Context, code string, _ uuid.UUID) (*vouchers.VoucherInfo, error) {
	if code == "MISSING" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "voucher not found")
	}
	return &vouchers.VoucherInfo{Code: code}, nil
}

func (stubVoucherService) CreateSellerVoucher(context.Context, uuid.UUID, vouchers.CreateSellerVoucherInput) (*models.SellerVoucher, error) {
	return &models.SellerVoucher{}, nil
}

func (stubVoucherService) GetSellerVoucher(context.Context, uuid.UUID, uuid.UUID) (*models.SellerVoucher, error) {
	return &models.SellerVoucher{}, nil
}

func (stubVoucherService) ListSellerVouchers(context.Context, uuid.UUID, pagination.Params) (*vouchers.SellerVoucherList, error) {
	return &vouchers.SellerVoucherList{}, nil
}

func (stubVoucherService) UpdateSellerVoucher(context.Context, uuid.UUID, uuid.UUID, vouchers.UpdateSellerVoucherInput) (*models.SellerVoucher, error) {
	return &models.SellerVoucher{}, nil
}

func (stubVoucherService) DeleteSellerVoucher(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type stubInventoryService struct{}

func (stubInventoryService) SetSellerQuantity(_ context.Context, _, productID uuid.UUID, qty int64) (*models.InventoryRecord, error) {
	return &models.InventoryRecord{ProductID: productID, Quantity: qty}, nil
}

func (stubInventoryService) Get(_ context.Context, productID uuid.UUID) (*models.InventoryRecord, error) {
	return &models.InventoryRecord{ProductID: productID}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
	}
}

func newTestRouter() http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		testConfig(),
		logg,
		nil,
		nil, // idempotency disabled in routing tests
		stubCheckoutService{},
		stubOrdersService{},
		stubVoucherService{},
		stubInventoryService{},
		nil,
	)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPlaceOrderRequiresBuyerHeader(t *testing.T) {
	router := newTestRouter()
	body := `{"address_id":"` + uuid.NewString() + `","items":[{"product_id":"` + uuid.NewString() + `","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without buyer header got %d", resp.Code)
	}
}

func TestPlaceOrderWithBuyerHeader(t *testing.T) {
	router := newTestRouter()
	body := `{"address_id":"` + uuid.NewString() + `","items":[{"product_id":"` + uuid.NewString() + `","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("X-Buyer-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSellerVoucherCreateRequiresSellerHeader(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/seller/vouchers/", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without seller header got %d", resp.Code)
	}
}

func TestVoucherLookup(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vouchers/SAVE10", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	missing := httptest.NewRequest(http.MethodGet, "/api/v1/vouchers/MISSING", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, missing)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestUpdateOrderItemStatusRequiresSellerHeader(t *testing.T) {
	router := newTestRouter()
	target := "/api/v1/order-items/" + uuid.NewString() + "/status"

	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(`{"status":"shipped"}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without seller header got %d", resp.Code)
	}

	ok := httptest.NewRequest(http.MethodPut, target, strings.NewReader(`{"status":"shipped"}`))
	ok.Header.Set("X-Seller-Id", uuid.NewString())
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, ok)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}
