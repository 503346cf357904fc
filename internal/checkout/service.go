package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Trang-1707/shoppi-backend/internal/inventory"
	"github.com/Trang-1707/shoppi-backend/internal/notifications"
	"github.com/Trang-1707/shoppi-backend/internal/orders"
	"github.com/Trang-1707/shoppi-backend/internal/products"
	"github.com/Trang-1707/shoppi-backend/internal/users"
	"github.com/Trang-1707/shoppi-backend/internal/vouchers"
	"github.com/Trang-1707/shoppi-backend/pkg/config"
	"github.com/Trang-1707/shoppi-backend/pkg/db"
	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	pkgerrors "github.com/Trang-1707/shoppi-backend/pkg/errors"
	"github.com/Trang-1707/shoppi-backend/pkg/logger"
	"github.com/Trang-1707/shoppi-backend/pkg/metrics"
	"github.com/Trang-1707/shoppi-backend/pkg/tracking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service is the checkout orchestrator.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error)
}

type service struct {
	users     users.Repository
	products  products.Repository
	inventory inventory.Repository
	vouchers  vouchers.Service
	orders    orders.Repository
	tx        txRunner
	publisher notifications.Publisher
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
	cfg       config.CheckoutConfig

	newCode func() (string, error)
	now     func() time.Time
}

// NewService builds the checkout orchestrator. The publisher may be nil, in
// which case confirmation events are skipped.
func NewService(
	usersRepo users.Repository,
	productsRepo products.Repository,
	inventoryRepo inventory.Repository,
	voucherSvc vouchers.Service,
	ordersRepo orders.Repository,
	tx txRunner,
	publisher notifications.Publisher,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
	cfg config.CheckoutConfig,
) (Service, error) {
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if voucherSvc == nil {
		return nil, fmt.Errorf("voucher service required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.TrackingAttempts <= 0 {
		cfg.TrackingAttempts = 5
	}
	return &service{
		users:     usersRepo,
		products:  productsRepo,
		inventory: inventoryRepo,
		vouchers:  voucherSvc,
		orders:    ordersRepo,
		tx:        tx,
		publisher: publisher,
		metrics:   checkoutMetrics,
		logg:      logg,
		cfg:       cfg,
		newCode:   tracking.NewCode,
		now:       time.Now,
	}, nil
}

// pricedItem is one validated line with its price snapshot.
type pricedItem struct {
	product  models.Product
	quantity int64
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error) {
	start := s.now()
	result, err := s.placeOrder(ctx, input)
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.metrics.ObserveDuration(outcome, s.now().Sub(start))
	s.metrics.IncPlaced(outcome)
	return result, err
}

func (s *service) placeOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	ctx = s.logg.WithBuyerID(ctx, input.BuyerID.String())

	buyer, err := s.users.FindByID(ctx, input.BuyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "buyer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading buyer")
	}

	if _, err := s.users.FindAddressForUser(ctx, input.AddressID, input.BuyerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading address")
	}

	// step 1: resolve products, check stock, accumulate the subtotal
	priced, subtotal, err := s.validateAndPrice(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	// steps 2-3: both voucher namespaces may apply and their discounts sum
	octx := vouchers.OrderContext{SubtotalCents: subtotal}
	for _, line := range priced {
		octx.Products = append(octx.Products, vouchers.ProductRef{
			ID:       line.product.ID,
			SellerID: line.product.SellerID,
		})
	}

	var platformDiscount, sellerDiscount *vouchers.Discount
	if input.CouponCode != "" {
		platformDiscount, err = s.vouchers.ValidatePlatform(ctx, input.CouponCode, octx)
		if err != nil {
			return nil, err
		}
	}
	if input.SellerCouponCode != "" {
		sellerDiscount, err = s.vouchers.ValidateSeller(ctx, input.SellerCouponCode, octx)
		if err != nil {
			return nil, err
		}
	}

	// step 4: total floored at zero
	var discountTotal int64
	for _, d := range []*vouchers.Discount{platformDiscount, sellerDiscount} {
		if d != nil {
			discountTotal += d.AmountCents
		}
	}
	total := subtotal - discountTotal
	if total < 0 {
		total = 0
	}

	// steps 5-8 run as one transaction: voucher redemption, tracking code,
	// order + items, inventory decrement either all commit or all roll back
	var order *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		for _, d := range []*vouchers.Discount{platformDiscount, sellerDiscount} {
			if d == nil {
				continue
			}
			if err := s.vouchers.Redeem(ctx, tx, *d); err != nil {
				return err
			}
		}

		ordersRepo := s.orders.WithTx(tx)
		code, err := s.allocateTrackingCode(ctx, ordersRepo)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		order = &models.Order{
			BuyerID:       input.BuyerID,
			AddressID:     input.AddressID,
			OrderDate:     now,
			Status:        enums.OrderStatusPending,
			SubtotalCents: subtotal,
			DiscountCents: discountTotal,
			TotalCents:    total,
			TrackingCode:  code,
			ShippingHistory: []models.ShippingEvent{
				{Status: "created", Date: now},
			},
		}
		if _, err := ordersRepo.Create(ctx, order); err != nil {
			if db.IsUniqueViolation(err, "idx_orders_tracking_code") {
				return pkgerrors.New(pkgerrors.CodeInternal, "tracking code collided at insert")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
		}

		items := make([]models.OrderItem, 0, len(priced))
		for _, line := range priced {
			items = append(items, models.OrderItem{
				OrderID:        order.ID,
				ProductID:      line.product.ID,
				SellerID:       line.product.SellerID,
				Quantity:       line.quantity,
				UnitPriceCents: line.product.PriceCents,
				Status:         enums.OrderItemStatusPending,
			})
		}
		if err := ordersRepo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order items")
		}

		// step 7: conditional decrement, insufficiency derived from the
		// mutation itself so concurrent checkouts cannot oversell
		invRepo := s.inventory.WithTx(tx)
		for _, line := range priced {
			ok, err := invRepo.DecrementIfAvailable(ctx, line.product.ID, line.quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrementing inventory")
			}
			if !ok {
				s.metrics.IncInsufficientStock()
				return insufficientStockError(ctx, invRepo, line)
			}
		}

		// step 8: defensive re-derivation; fresh items are pending so this
		// only matters if the status domain ever changes at creation
		return s.syncWithinTx(ctx, ordersRepo, order)
	})
	if err != nil {
		return nil, err
	}

	for _, d := range []*vouchers.Discount{platformDiscount, sellerDiscount} {
		if d != nil {
			s.metrics.IncVoucherRedemption(string(d.Scope))
		}
	}

	// step 9: best-effort, never fails the checkout
	s.notify(ctx, buyer, order)

	return &PlaceOrderResult{
		OrderID:       order.ID,
		TrackingCode:  order.TrackingCode,
		SubtotalCents: subtotal,
		DiscountCents: discountTotal,
		TotalCents:    total,
	}, nil
}

func validateInput(input PlaceOrderInput) error {
	if input.BuyerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "buyer id required")
	}
	if input.AddressID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "address id required")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "item product id required")
		}
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
	}
	return nil
}

// validateAndPrice resolves every product, lazily creates its inventory row
// and rejects lines the current stock cannot cover. The check here is
// advisory; the transactional decrement makes the final call.
func (s *service) validateAndPrice(ctx context.Context, items []SelectedItem) ([]pricedItem, int64, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading products")
	}
	byID := make(map[uuid.UUID]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	var subtotal int64
	priced := make([]pricedItem, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, 0, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
		if !product.IsActive {
			return nil, 0, pkgerrors.New(pkgerrors.CodeConflict, "product is not available").
				WithDetails(map[string]any{"product_id": product.ID, "title": product.Title})
		}

		record, err := s.inventory.GetOrCreate(ctx, product.ID)
		if err != nil {
			return nil, 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading inventory")
		}
		if record.Quantity < item.Quantity {
			return nil, 0, pkgerrors.New(pkgerrors.CodeConflict, "insufficient inventory").
				WithDetails(map[string]any{
					"product_id": product.ID,
					"title":      product.Title,
					"available":  record.Quantity,
					"requested":  item.Quantity,
				})
		}

		subtotal += product.PriceCents * item.Quantity
		priced = append(priced, pricedItem{product: product, quantity: item.Quantity})
	}
	return priced, subtotal, nil
}

// allocateTrackingCode draws random codes until one is free, bounded by the
// configured attempt budget. The unique index on orders.tracking_code is the
// final backstop for the residual check-then-insert window.
func (s *service) allocateTrackingCode(ctx context.Context, repo orders.Repository) (string, error) {
	for attempt := 0; attempt < s.cfg.TrackingAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating tracking code")
		}
		exists, err := repo.TrackingCodeExists(ctx, code)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking tracking code")
		}
		if !exists {
			return code, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, "tracking code attempts exhausted")
}

func insufficientStockError(ctx context.Context, repo inventory.Repository, line pricedItem) error {
	details := map[string]any{
		"product_id": line.product.ID,
		"title":      line.product.Title,
		"requested":  line.quantity,
	}
	if record, err := repo.GetOrCreate(ctx, line.product.ID); err == nil {
		details["available"] = record.Quantity
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "insufficient inventory").WithDetails(details)
}

func (s *service) syncWithinTx(ctx context.Context, repo orders.Repository, order *models.Order) error {
	items, err := repo.FindItems(ctx, order.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order items")
	}
	if len(items) == 0 {
		return nil
	}
	for _, item := range items {
		if item.Status != enums.OrderItemStatusShipped {
			return nil
		}
	}
	if err := repo.UpdateStatus(ctx, order.ID, enums.OrderStatusShipped); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	order.Status = enums.OrderStatusShipped
	return nil
}

func (s *service) notify(ctx context.Context, buyer *models.User, order *models.Order) {
	if s.publisher == nil {
		return
	}
	timeout := s.cfg.NotifyTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	event := notifications.OrderPlacedEvent{
		OrderID:      order.ID,
		BuyerID:      buyer.ID,
		TrackingCode: order.TrackingCode,
		TotalCents:   order.TotalCents,
		OrderDate:    order.OrderDate,
	}
	if err := s.publisher.PublishOrderPlaced(notifyCtx, event); err != nil {
		s.logg.Error(s.logg.WithOrderID(ctx, order.ID.String()), "publishing order confirmation", err)
	}
}
