package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshkart/shopapi/internal/blobstore"
	"github.com/freshkart/shopapi/internal/events"
	"github.com/freshkart/shopapi/internal/models"
	"github.com/freshkart/shopapi/internal/repo"
	"github.com/freshkart/shopapi/internal/transport"
	"github.com/freshkart/shopapi/pkg/logging"
)

const defaultOrderListLimit = 50

type OrderService struct {
	Repo   *repo.GormRepo
	Store  blobstore.Signer
	Events *events.Producer
}

// Place snapshots the cart's line items verbatim into a new order and
// empties the cart. Placing from a missing or empty cart is EmptyCart.
func (s *OrderService) Place(ctx context.Context, userID uuid.UUID) (*transport.OrderView, error) {
	l := logging.FromContext(ctx).With("svc", "order.place")

	order, err := s.Repo.PlaceOrder(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrEmptyCart) {
			return nil, fmt.Errorf("cannot place order: %w", ErrEmptyCart)
		}
		return nil, err
	}

	if err := s.Events.Publish(ctx, events.TopicOrderEvents, order.ID.String(), map[string]any{
		"type":     "order_placed",
		"order_id": order.ID,
		"user_id":  userID,
		"items":    len(order.Items),
	}); err != nil {
		l.Warn("publish_failed", "topic", events.TopicOrderEvents, "error", err)
	}

	return s.orderView(ctx, order)
}

func (s *OrderService) List(ctx context.Context, userID uuid.UUID) ([]transport.OrderView, error) {
	orders, err := s.Repo.OrdersByUser(ctx, userID, defaultOrderListLimit)
	if err != nil {
		return nil, err
	}

	views := make([]transport.OrderView, 0, len(orders))
	for i := range orders {
		v, err := s.orderView(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *OrderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*transport.OrderView, error) {
	order, err := s.Repo.OrderByID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return s.orderView(ctx, order)
}

func (s *OrderService) IncreaseItem(ctx context.Context, orderID, userID, productID uuid.UUID) (*transport.OrderView, error) {
	return s.adjustItem(ctx, orderID, userID, productID, +1)
}

// DecreaseItem stops at quantity 1. Unlike the cart, an order line item is
// never removed by decrementing.
func (s *OrderService) DecreaseItem(ctx context.Context, orderID, userID, productID uuid.UUID) (*transport.OrderView, error) {
	return s.adjustItem(ctx, orderID, userID, productID, -1)
}

func (s *OrderService) adjustItem(ctx context.Context, orderID, userID, productID uuid.UUID, delta int) (*transport.OrderView, error) {
	if err := s.Repo.AdjustItem(ctx, orderID, userID, productID, delta); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order or product not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return s.Get(ctx, userID, orderID)
}

// MarkPlaced transitions the order to placed. The transition carries no
// precondition on the current status; re-placing is an idempotent no-op.
func (s *OrderService) MarkPlaced(ctx context.Context, orderID, userID uuid.UUID) (*transport.OrderView, error) {
	if err := s.Repo.MarkPlaced(ctx, orderID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return s.Get(ctx, userID, orderID)
}

func (s *OrderService) orderView(ctx context.Context, order *models.Order) (*transport.OrderView, error) {
	refs := make([]itemRef, 0, len(order.Items))
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, it := range order.Items {
		refs = append(refs, itemRef{productID: it.ProductID, quantity: it.Quantity})
		ids = append(ids, it.ProductID)
	}

	products, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &transport.OrderView{
		ID:          order.ID,
		OrderStatus: order.Status,
		Products:    resolveLineItems(ctx, s.Store, products, refs),
		CreatedAt:   order.CreatedAt,
	}, nil
}
