package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shopcart/order-service/internal/model"
	"github.com/shopcart/order-service/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, name, description, price, stock, image_url, added_by,
            created_at, updated_at
        )
        VALUES (
            :id, :name, :description, :price, :stock, :image_url, :added_by,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "insert product")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	discounts, err := r.FindDiscountsByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Discounts = discounts
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.AddedBy != "" {
		conditions = append(conditions, "added_by = :added_by")
		args["added_by"] = f.AddedBy
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	// Whitelist sort fields to keep injection out of ORDER BY.
	orderBy := "created_at DESC"
	if f.SortBy != "" {
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "price"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}
	if err := r.attachDiscounts(ctx, products); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) attachDiscounts(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	query, args, err := sqlx.In(
		`SELECT * FROM discounts WHERE product_id IN (?) ORDER BY created_at, id`, ids)
	if err != nil {
		return err
	}
	var discounts []model.Discount
	if err := r.DB.SelectContext(ctx, &discounts, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	byProduct := make(map[string][]model.Discount)
	for _, d := range discounts {
		byProduct[d.ProductID] = append(byProduct[d.ProductID], d)
	}
	for i := range products {
		products[i].Discounts = byProduct[products[i].ID]
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            description = :description,
            price = :price,
            stock = :stock,
            image_url = :image_url,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "update product")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return errors.Wrap(err, "delete product")
}

func (r *PGRepository) CreateDiscount(ctx context.Context, d *model.Discount) error {
	query := `
        INSERT INTO discounts (id, product_id, percentage, start_date, end_date, active, created_at)
        VALUES (:id, :product_id, :percentage, :start_date, :end_date, :active, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, d)
	return errors.Wrap(err, "insert discount")
}

func (r *PGRepository) UpdateDiscount(ctx context.Context, d *model.Discount) error {
	query := `
        UPDATE discounts
        SET percentage = :percentage,
            start_date = :start_date,
            end_date = :end_date,
            active = :active
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, d)
	return errors.Wrap(err, "update discount")
}

func (r *PGRepository) FindDiscountsByProduct(ctx context.Context, productID string) ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.DB.SelectContext(ctx, &discounts,
		`SELECT * FROM discounts WHERE product_id = $1 ORDER BY created_at, id`, productID)
	return discounts, err
}
