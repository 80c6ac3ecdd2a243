package cart

import (
	"context"

	"github.com/shopcart/order-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, item *model.CartItem) error
	FindByID(ctx context.Context, id string) (*model.CartItem, error)
	// FindByUser returns the user's cart lines with Product (including its
	// discounts) populated, oldest first.
	FindByUser(ctx context.Context, userID string) ([]model.CartItem, error)
	Delete(ctx context.Context, id string) error
}
