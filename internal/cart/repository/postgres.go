package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopcart/order-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, item *model.CartItem) error {
	query := `
        INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
        VALUES (:id, :user_id, :product_id, :quantity, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return errors.Wrap(err, "insert cart item")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.CartItem, error) {
	var item model.CartItem
	err := r.DB.GetContext(ctx, &item, `SELECT * FROM cart_items WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) FindByUser(ctx context.Context, userID string) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM cart_items WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	productIDs := make([]string, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE id IN (?)`, productIDs)
	if err != nil {
		return nil, err
	}
	var products []model.Product
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}

	query, args, err = sqlx.In(
		`SELECT * FROM discounts WHERE product_id IN (?) ORDER BY created_at, id`, productIDs)
	if err != nil {
		return nil, err
	}
	var discounts []model.Discount
	if err := r.DB.SelectContext(ctx, &discounts, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, d := range discounts {
		if p, ok := byID[d.ProductID]; ok {
			p.Discounts = append(p.Discounts, d)
		}
	}
	for i := range items {
		items[i].Product = byID[items[i].ProductID]
	}
	return items, nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	return errors.Wrap(err, "delete cart item")
}
