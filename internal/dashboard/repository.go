package dashboard

import (
	"context"

	"github.com/shopcart/order-service/internal/model"
)

// Repository is a read-only reduction over the order store.
type Repository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error)

	// Admin-scoped reductions: only orders/items touching the admin's
	// products count.
	CountOrdersWithAdminItems(ctx context.Context, adminID string) (int64, error)
	AdminDeliveredRevenue(ctx context.Context, adminID string) (float64, error)
	CountAdminItemsByStatus(ctx context.Context, adminID string, status model.OrderStatus) (int64, error)
}
