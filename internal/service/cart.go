package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshkart/shopapi/internal/blobstore"
	"github.com/freshkart/shopapi/internal/models"
	"github.com/freshkart/shopapi/internal/repo"
	"github.com/freshkart/shopapi/internal/transport"
)

type CartService struct {
	Repo  *repo.GormRepo
	Store blobstore.Signer
}

// Get returns the user's cart with products resolved and images signed. A
// user who never added anything gets an empty virtual cart, not an error.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*transport.CartView, error) {
	cart, err := s.Repo.CartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &transport.CartView{Products: []transport.LineItemView{}}, nil
		}
		return nil, err
	}
	return s.cartView(ctx, cart)
}

// AddItem merges quantity when the product is already a line item and
// appends otherwise, creating the cart on first use.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity uint) (*transport.CartView, error) {
	if quantity == 0 {
		quantity = 1
	}

	if _, err := s.Repo.ProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}

	if err := s.Repo.AddItem(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// RemoveItem drops the line item entirely. No cart at all is NotFound; a
// product that is just not in the cart is a no-op and the unchanged cart
// comes back.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*transport.CartView, error) {
	if err := s.Repo.RemoveItem(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return s.Get(ctx, userID)
}

// DecrementItem lowers the quantity by one and removes the line item when
// it stands at 1. Missing cart and missing line item are both NotFound.
func (s *CartService) DecrementItem(ctx context.Context, userID, productID uuid.UUID) (*transport.CartView, error) {
	if err := s.Repo.DecrementItem(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found in cart: %w", ErrNotFound)
		}
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *CartService) cartView(ctx context.Context, cart *models.Cart) (*transport.CartView, error) {
	refs := make([]itemRef, 0, len(cart.Items))
	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, it := range cart.Items {
		refs = append(refs, itemRef{productID: it.ProductID, quantity: it.Quantity})
		ids = append(ids, it.ProductID)
	}

	products, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &transport.CartView{
		Products: resolveLineItems(ctx, s.Store, products, refs),
	}, nil
}
