package product

import (
	"context"

	"github.com/shopcart/order-service/internal/model"
	"github.com/shopcart/order-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, p *model.Product) error
	// FindByID loads the product with its discounts ordered by created_at, id.
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error

	// Discounts
	CreateDiscount(ctx context.Context, d *model.Discount) error
	UpdateDiscount(ctx context.Context, d *model.Discount) error
	FindDiscountsByProduct(ctx context.Context, productID string) ([]model.Discount, error)
}
