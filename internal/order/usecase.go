package order

import (
	"context"

	"github.com/shopcart/order-service/internal/model"
	"github.com/shopcart/order-service/internal/order/dto"
)

type UseCase interface {
	PlaceOrder(ctx context.Context, email string, input *dto.PlaceOrderInput) (*model.Order, error)
	GetOrdersByUser(ctx context.Context, email string) ([]model.Order, error)
	GetOrderByID(ctx context.Context, email, orderID string) (*model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	// GetOrdersForAdmin returns a synthetic, non-persisted projection: only
	// items whose product belongs to the admin, totals recomputed over the
	// filtered items, orders without matching items dropped.
	GetOrdersForAdmin(ctx context.Context, adminID string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	UpdateOrderItemStatus(ctx context.Context, itemID string, status model.OrderStatus) error
	CancelOrderItem(ctx context.Context, email, orderID, itemID string) error
	InvoiceData(ctx context.Context, orderID string) (*dto.InvoiceData, error)
}
