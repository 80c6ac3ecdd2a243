package order

import (
	"context"
	"time"

	"github.com/shopcart/order-service/internal/model"
)

// Repository owns every transaction that touches orders. Stock is the one
// resource contended by concurrent checkouts, so each mutation below runs a
// read-check-write of product stock inside the same transaction as the
// order rows it accompanies.
type Repository interface {
	// Create persists the order with its items and initial history row,
	// reserves stock for every line via a conditional decrement, and clears
	// the user's cart. All-or-nothing: a failed reservation rolls back
	// everything and returns InsufficientStock naming the product.
	Create(ctx context.Context, o *model.Order) error

	// FindByID loads the order with items, history and customer identity.
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByUser(ctx context.Context, userID string) ([]model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatusCascade sets the order status, cascades it to every item
	// that is not CANCELLED, and appends a history row.
	UpdateStatusCascade(ctx context.Context, orderID string, status model.OrderStatus, changedAt time.Time) error

	// UpdateItemStatus sets one item's status, promotes the order to
	// DELIVERED once every item is delivered, and appends a history row.
	UpdateItemStatus(ctx context.Context, itemID string, status model.OrderStatus, changedAt time.Time) error

	// CancelItem is the compensating transaction: restore stock, mark the
	// item CANCELLED, recompute the order total over non-cancelled items,
	// promote the order to CANCELLED when no item remains, append history.
	// The cancellability check is repeated inside the transaction so two
	// racing cancellations cannot both release stock.
	CancelItem(ctx context.Context, orderID, itemID string, changedAt time.Time) error
}
