package cart

import (
	"context"

	"github.com/shopcart/order-service/internal/cart/dto"
)

type UseCase interface {
	AddToCart(ctx context.Context, email, productID string, quantity int) (*dto.CartItemView, error)
	GetCartItems(ctx context.Context, email string) ([]dto.CartItemView, error)
	RemoveFromCart(ctx context.Context, email, cartItemID string) error
	TotalCartValue(ctx context.Context, email string) (float64, error)
}
