package cart

import (
	"context"

	"go.uber.org/zap"

	"github.com/trendora/storefront/internal/domain"
)

// Service mutates per-user cart state. Product ids and size labels are not
// validated against the catalog.
type Service struct {
	carts Repository
}

func NewService(carts Repository) *Service {
	return &Service{carts: carts}
}

// AddItem increments the quantity at [productID][size] by one and persists
// the whole cart back.
func (s *Service) AddItem(ctx context.Context, userID int64, productID, size string) (domain.CartData, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Add(productID, size)
	if err := s.carts.SaveCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetItemQuantity overwrites the quantity for an existing cart entry. A
// product never added fails with domain.ErrCartItemMissing.
func (s *Service) SetItemQuantity(ctx context.Context, userID int64, productID, size string, quantity int) (domain.CartData, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.SetQuantity(productID, size, quantity); err != nil {
		zap.L().Warn("cart update rejected",
			zap.Int64("user_id", userID),
			zap.String("product_id", productID),
			zap.Error(err))
		return nil, err
	}
	if err := s.carts.SaveCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart returns the stored cart verbatim.
func (s *Service) GetCart(ctx context.Context, userID int64) (domain.CartData, error) {
	return s.carts.GetCart(ctx, userID)
}
