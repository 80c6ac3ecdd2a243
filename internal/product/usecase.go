package product

import (
	"context"

	"github.com/shopcart/order-service/internal/model"
	"github.com/shopcart/order-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*dto.ProductView, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]dto.ProductView, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, adminID, id string) error

	AddDiscount(ctx context.Context, input *dto.DiscountInput) (*model.Discount, error)
	UpdateDiscount(ctx context.Context, input *dto.DiscountInput) (*model.Discount, error)
	RemoveDiscount(ctx context.Context, productID string) error
}
