package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/shopcart/order-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.GetContext(ctx, &n, `SELECT count(*) FROM users`)
	return n, err
}

func (r *PGRepository) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.GetContext(ctx, &n, `SELECT count(*) FROM orders`)
	return n, err
}

func (r *PGRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var sum float64
	err := r.DB.GetContext(ctx, &sum, `SELECT COALESCE(SUM(total_amount), 0) FROM orders`)
	return sum, err
}

func (r *PGRepository) CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var n int64
	err := r.DB.GetContext(ctx, &n, `SELECT count(*) FROM orders WHERE status = $1`, status)
	return n, err
}

func (r *PGRepository) CountOrdersWithAdminItems(ctx context.Context, adminID string) (int64, error) {
	var n int64
	err := r.DB.GetContext(ctx, &n, `
		SELECT count(DISTINCT oi.order_id)
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE p.added_by = $1
	`, adminID)
	return n, err
}

func (r *PGRepository) AdminDeliveredRevenue(ctx context.Context, adminID string) (float64, error) {
	var sum float64
	err := r.DB.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(oi.total), 0)
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE p.added_by = $1 AND oi.status = $2
	`, adminID, model.StatusDelivered)
	return sum, err
}

func (r *PGRepository) CountAdminItemsByStatus(ctx context.Context, adminID string, status model.OrderStatus) (int64, error) {
	var n int64
	err := r.DB.GetContext(ctx, &n, `
		SELECT count(*)
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE p.added_by = $1 AND oi.status = $2
	`, adminID, status)
	return n, err
}
