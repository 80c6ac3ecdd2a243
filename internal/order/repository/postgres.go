package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shopcart/order-service/internal/model"
	"github.com/shopcart/order-service/pkg/apperrors"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const reserveStockQuery = `
	UPDATE products
	SET stock = stock - $1, updated_at = $2
	WHERE id = $3 AND stock >= $1
`

const releaseStockQuery = `
	UPDATE products
	SET stock = stock + $1, updated_at = $2
	WHERE id = $3
`

const insertOrderQuery = `
	INSERT INTO orders (
		id, user_id, status, total_amount, payment_method, payment_status,
		transaction_id, ship_street, ship_city, ship_state, ship_zip_code,
		ship_country, created_at, updated_at
	)
	VALUES (
		:id, :user_id, :status, :total_amount, :payment_method, :payment_status,
		:transaction_id, :ship_street, :ship_city, :ship_state, :ship_zip_code,
		:ship_country, :created_at, :updated_at
	)
`

const insertItemQuery = `
	INSERT INTO order_items (id, order_id, product_id, quantity, price, total, status, created_at)
	VALUES (:id, :order_id, :product_id, :quantity, :price, :total, :status, :created_at)
`

const insertHistoryQuery = `
	INSERT INTO order_status_history (id, order_id, status, changed_at)
	VALUES ($1, $2, $3, $4)
`

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin checkout tx")
	}
	defer tx.Rollback()

	// Reserve stock line by line. The conditional update is the serialization
	// point: two checkouts racing for the last unit cannot both pass it.
	for i := range o.Items {
		item := &o.Items[i]
		res, err := tx.ExecContext(ctx, reserveStockQuery, item.Quantity, o.CreatedAt, item.ProductID)
		if err != nil {
			return errors.Wrap(err, "reserve stock")
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperrors.InsufficientStock("insufficient stock for product: %s", item.ProductName)
		}
	}

	if _, err := tx.NamedExecContext(ctx, insertOrderQuery, o); err != nil {
		return errors.Wrap(err, "insert order")
	}
	for i := range o.Items {
		if _, err := tx.NamedExecContext(ctx, insertItemQuery, &o.Items[i]); err != nil {
			return errors.Wrap(err, "insert order item")
		}
	}
	for _, h := range o.History {
		if _, err := tx.ExecContext(ctx, insertHistoryQuery, h.ID, h.OrderID, h.Status, h.ChangedAt); err != nil {
			return errors.Wrap(err, "insert status history")
		}
	}

	// Cart is cleared only once the order rows are in.
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
		return errors.Wrap(err, "clear cart")
	}

	return errors.Wrap(tx.Commit(), "commit checkout tx")
}

const selectOrderQuery = `
	SELECT o.*, u.name AS user_name, u.email AS user_email
	FROM orders o
	JOIN users u ON u.id = o.user_id
`

const selectItemsQuery = `
	SELECT oi.*, p.name AS product_name, p.added_by AS product_added_by
	FROM order_items oi
	JOIN products p ON p.id = oi.product_id
`

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, selectOrderQuery+` WHERE o.id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.DB.SelectContext(ctx, &o.Items,
		selectItemsQuery+` WHERE oi.order_id = $1 ORDER BY oi.created_at, oi.id`, id); err != nil {
		return nil, err
	}
	if err := r.DB.SelectContext(ctx, &o.History,
		`SELECT * FROM order_status_history WHERE order_id = $1 ORDER BY changed_at, id`, id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.SelectContext(ctx, &orders,
		selectOrderQuery+` WHERE o.user_id = $1 ORDER BY o.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.attachChildren(ctx, orders)
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.SelectContext(ctx, &orders, selectOrderQuery+` ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return r.attachChildren(ctx, orders)
}

func (r *PGRepository) attachChildren(ctx context.Context, orders []model.Order) ([]model.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	query, args, err := sqlx.In(
		selectItemsQuery+` WHERE oi.order_id IN (?) ORDER BY oi.created_at, oi.id`, ids)
	if err != nil {
		return nil, err
	}
	var items []model.OrderItem
	if err := r.DB.SelectContext(ctx, &items, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}

	query, args, err = sqlx.In(
		`SELECT * FROM order_status_history WHERE order_id IN (?) ORDER BY changed_at, id`, ids)
	if err != nil {
		return nil, err
	}
	var history []model.OrderStatusHistory
	if err := r.DB.SelectContext(ctx, &history, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Order, len(orders))
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
	}
	for _, it := range items {
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	for _, h := range history {
		if o, ok := byID[h.OrderID]; ok {
			o.History = append(o.History, h)
		}
	}
	return orders, nil
}

func (r *PGRepository) UpdateStatusCascade(ctx context.Context, orderID string, status model.OrderStatus, changedAt time.Time) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin status tx")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`, status, changedAt, orderID)
	if err != nil {
		return errors.Wrap(err, "update order status")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("order not found with id: %s", orderID)
	}

	// Cancelled items stay cancelled whatever the order-level transition is.
	if _, err := tx.ExecContext(ctx,
		`UPDATE order_items SET status = $1 WHERE order_id = $2 AND status <> $3`,
		status, orderID, model.StatusCancelled); err != nil {
		return errors.Wrap(err, "cascade item status")
	}

	if _, err := tx.ExecContext(ctx, insertHistoryQuery,
		uuid.New().String(), orderID, status, changedAt); err != nil {
		return errors.Wrap(err, "insert status history")
	}

	return errors.Wrap(tx.Commit(), "commit status tx")
}

func (r *PGRepository) UpdateItemStatus(ctx context.Context, itemID string, status model.OrderStatus, changedAt time.Time) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin item status tx")
	}
	defer tx.Rollback()

	var orderID string
	err = tx.QueryRowxContext(ctx,
		`UPDATE order_items SET status = $1 WHERE id = $2 RETURNING order_id`,
		status, itemID).Scan(&orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("order item not found with id: %s", itemID)
		}
		return errors.Wrap(err, "update item status")
	}

	var pending int
	if err := tx.GetContext(ctx, &pending,
		`SELECT count(*) FROM order_items WHERE order_id = $1 AND status <> $2`,
		orderID, model.StatusDelivered); err != nil {
		return err
	}
	if pending == 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
			model.StatusDelivered, changedAt, orderID); err != nil {
			return errors.Wrap(err, "promote order to delivered")
		}
	}

	if _, err := tx.ExecContext(ctx, insertHistoryQuery,
		uuid.New().String(), orderID, status, changedAt); err != nil {
		return errors.Wrap(err, "insert status history")
	}

	return errors.Wrap(tx.Commit(), "commit item status tx")
}

func (r *PGRepository) CancelItem(ctx context.Context, orderID, itemID string, changedAt time.Time) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin cancel tx")
	}
	defer tx.Rollback()

	// Lock the item row; the status check must happen inside the transaction
	// so a racing cancellation cannot release stock twice.
	var item model.OrderItem
	err = tx.GetContext(ctx, &item,
		`SELECT id, order_id, product_id, quantity, price, total, status, created_at
		 FROM order_items WHERE id = $1 AND order_id = $2 FOR UPDATE`, itemID, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("order item not found with id: %s", itemID)
		}
		return errors.Wrap(err, "load order item")
	}
	if !item.Status.Cancellable() {
		return apperrors.InvalidState("this item cannot be cancelled after it is shipped or delivered")
	}

	if _, err := tx.ExecContext(ctx, releaseStockQuery, item.Quantity, changedAt, item.ProductID); err != nil {
		return errors.Wrap(err, "release stock")
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE order_items SET status = $1 WHERE id = $2`, model.StatusCancelled, itemID); err != nil {
		return errors.Wrap(err, "cancel order item")
	}

	var newTotal float64
	if err := tx.GetContext(ctx, &newTotal,
		`SELECT COALESCE(SUM(total), 0) FROM order_items WHERE order_id = $1 AND status <> $2`,
		orderID, model.StatusCancelled); err != nil {
		return err
	}
	var remaining int
	if err := tx.GetContext(ctx, &remaining,
		`SELECT count(*) FROM order_items WHERE order_id = $1 AND status <> $2`,
		orderID, model.StatusCancelled); err != nil {
		return err
	}

	if remaining == 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE orders SET total_amount = $1, status = $2, updated_at = $3 WHERE id = $4`,
			newTotal, model.StatusCancelled, changedAt, orderID)
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE orders SET total_amount = $1, updated_at = $2 WHERE id = $3`,
			newTotal, changedAt, orderID)
	}
	if err != nil {
		return errors.Wrap(err, "update order total")
	}

	if _, err := tx.ExecContext(ctx, insertHistoryQuery,
		uuid.New().String(), orderID, model.StatusCancelled, changedAt); err != nil {
		return errors.Wrap(err, "insert status history")
	}

	return errors.Wrap(tx.Commit(), "commit cancel tx")
}
