package orders

import (
	"context"
	"fmt"

	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	"github.com/Trang-1707/shoppi-backend/pkg/enums"
	pkgerrors "github.com/Trang-1707/shoppi-backend/pkg/errors"
	"github.com/Trang-1707/shoppi-backend/pkg/pagination"
	"github.com/google/uuid"
)

// Service defines order-level operations beyond repository reads.
type Service interface {
	SyncStatus(ctx context.Context, orderID uuid.UUID) (bool, error)
	UpdateItemStatus(ctx context.Context, input UpdateItemStatusInput) (*models.OrderItem, error)
	GetOrder(ctx context.Context, buyerID, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, buyerID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error)
}

type service struct {
	repo Repository
}

// NewService builds the order service with its required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// SyncStatus derives the order status from its items: the order becomes
// shipped if and only if every item is shipped. The rule is forward-only and
// idempotent; no other status is derived. It does not append to the shipping
// history.
func (s *service) SyncStatus(ctx context.Context, orderID uuid.UUID) (bool, error) {
	if orderID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if IsNotFound(err) {
			return false, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if order.Status == enums.OrderStatusShipped {
		return false, nil
	}

	items, err := s.repo.FindItems(ctx, orderID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order items")
	}
	if !allShipped(items) {
		return false, nil
	}

	if err := s.repo.UpdateStatus(ctx, orderID, enums.OrderStatusShipped); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	return true, nil
}

func allShipped(items []models.OrderItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if item.Status != enums.OrderItemStatusShipped {
			return false
		}
	}
	return true
}

// UpdateItemStatus applies a seller's fulfillment transition to one line and
// re-derives the order status when the line reaches shipped.
func (s *service) UpdateItemStatus(ctx context.Context, input UpdateItemStatusInput) (*models.OrderItem, error) {
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order item id required")
	}
	status, err := enums.ParseOrderItemStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order item status").
			WithDetails(map[string]any{"status": input.Status})
	}

	item, err := s.repo.FindItem(ctx, input.ItemID)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order item")
	}
	if input.SellerID != uuid.Nil && item.SellerID != input.SellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order item belongs to another seller")
	}

	if err := s.repo.UpdateItemStatus(ctx, input.ItemID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order item status")
	}
	item.Status = status

	if status == enums.OrderItemStatusShipped {
		if _, err := s.SyncStatus(ctx, item.OrderID); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// GetOrder loads a buyer's order detail, re-deriving its status first.
func (s *service) GetOrder(ctx context.Context, buyerID, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindDetail(ctx, orderID)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if buyerID != uuid.Nil && order.BuyerID != buyerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	changed, err := s.SyncStatus(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if changed {
		order.Status = enums.OrderStatusShipped
	}
	return order, nil
}

// ListOrders returns one page of the buyer's orders, each re-synchronized
// against its items before being returned.
func (s *service) ListOrders(ctx context.Context, buyerID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer id required")
	}

	rows, total, err := s.repo.ListByBuyer(ctx, buyerID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}

	summaries := make([]OrderSummary, 0, len(rows))
	for i := range rows {
		order := &rows[i]
		if order.Status != enums.OrderStatusShipped && allShipped(order.Items) {
			if err := s.repo.UpdateStatus(ctx, order.ID, enums.OrderStatusShipped); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
			}
			order.Status = enums.OrderStatusShipped
		}
		summaries = append(summaries, OrderSummary{
			ID:           order.ID,
			OrderDate:    order.OrderDate,
			Status:       order.Status,
			TotalCents:   order.TotalCents,
			TrackingCode: order.TrackingCode,
			TotalItems:   len(order.Items),
		})
	}

	return &OrderList{
		Orders: summaries,
		Meta:   pagination.NewMeta(params, total),
	}, nil
}
