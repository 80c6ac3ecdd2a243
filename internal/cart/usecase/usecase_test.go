package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcart/order-service/internal/model"
	"github.com/shopcart/order-service/internal/product/dto"
	"github.com/shopcart/order-service/pkg/apperrors"
	"github.com/shopcart/order-service/pkg/logger"
)

type fakeUserRepo struct {
	users []*model.User
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type fakeProductRepo struct {
	products map[string]*model.Product
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) CreateDiscount(_ context.Context, d *model.Discount) error {
	p := r.products[d.ProductID]
	p.Discounts = append(p.Discounts, *d)
	return nil
}

func (r *fakeProductRepo) UpdateDiscount(_ context.Context, d *model.Discount) error {
	p := r.products[d.ProductID]
	for i := range p.Discounts {
		if p.Discounts[i].ID == d.ID {
			p.Discounts[i] = *d
		}
	}
	return nil
}

func (r *fakeProductRepo) FindDiscountsByProduct(_ context.Context, productID string) ([]model.Discount, error) {
	return r.products[productID].Discounts, nil
}

type fakeCartRepo struct {
	items    []model.CartItem
	products *fakeProductRepo
}

func (r *fakeCartRepo) Create(_ context.Context, item *model.CartItem) error {
	r.items = append(r.items, *item)
	return nil
}

func (r *fakeCartRepo) FindByID(_ context.Context, id string) (*model.CartItem, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			item := r.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) FindByUser(_ context.Context, userID string) ([]model.CartItem, error) {
	var out []model.CartItem
	for i := range r.items {
		if r.items[i].UserID == userID {
			item := r.items[i]
			// Mirror the SQL repository: products are re-read on every load, so
			// the cart always values against the current catalog state.
			item.Product = r.products.products[item.ProductID]
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeCartRepo) Delete(_ context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func newTestUseCase() (*cartUseCase, *fakeCartRepo, *fakeProductRepo) {
	users := &fakeUserRepo{users: []*model.User{
		{BaseModel: model.BaseModel{ID: "u1"}, Name: "Ada", Email: "ada@example.com", Role: model.RoleUser},
		{BaseModel: model.BaseModel{ID: "u2"}, Name: "Ben", Email: "ben@example.com", Role: model.RoleUser},
	}}
	products := &fakeProductRepo{products: map[string]*model.Product{
		"p1": {
			BaseModel: model.BaseModel{ID: "p1"},
			Name:      "Keyboard",
			Price:     100,
			Stock:     10,
			AddedBy:   "a1",
			Discounts: []model.Discount{{ID: "d1", ProductID: "p1", Percentage: 20, Active: true}},
		},
		"p2": {
			BaseModel: model.BaseModel{ID: "p2"},
			Name:      "Mouse",
			Price:     40,
			Stock:     2,
			AddedBy:   "a1",
		},
	}}
	carts := &fakeCartRepo{products: products}

	uc := &cartUseCase{
		repo:        carts,
		userRepo:    users,
		productRepo: products,
		logger:      logger.NewNop(),
		now:         func() time.Time { return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
	return uc, carts, products
}

func TestAddToCartQuantityValidation(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.AddToCart(context.Background(), "ada@example.com", "p1", 0)
	assert.True(t, apperrors.IsValidation(err))
	_, err = uc.AddToCart(context.Background(), "ada@example.com", "p1", -3)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddToCartUnknownUser(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.AddToCart(context.Background(), "ghost@example.com", "p1", 1)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddToCartUnknownProduct(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.AddToCart(context.Background(), "ada@example.com", "missing", 1)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddToCartInsufficientStock(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.AddToCart(context.Background(), "ada@example.com", "p2", 3)
	require.Error(t, err)
	assert.True(t, apperrors.IsInsufficientStock(err))
	assert.Contains(t, err.Error(), "Mouse")
}

func TestAddToCartValuesWithLiveDiscount(t *testing.T) {
	uc, carts, _ := newTestUseCase()

	view, err := uc.AddToCart(context.Background(), "ada@example.com", "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", view.ProductName)
	assert.Equal(t, 100.0, view.OriginalPrice)
	assert.Equal(t, 80.0, view.UnitPrice)
	assert.Equal(t, 240.0, view.LineTotal)
	assert.Len(t, carts.items, 1)
}

func TestGetCartItemsRevaluesOnEveryRead(t *testing.T) {
	uc, _, products := newTestUseCase()
	_, err := uc.AddToCart(context.Background(), "ada@example.com", "p1", 1)
	require.NoError(t, err)

	views, err := uc.GetCartItems(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 80.0, views[0].UnitPrice)

	// Deactivate the discount: the cart is advisory, so the next read shows
	// the full price.
	products.products["p1"].Discounts[0].Active = false
	views, err = uc.GetCartItems(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 100.0, views[0].UnitPrice)
}

func TestTotalCartValue(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.AddToCart(context.Background(), "ada@example.com", "p1", 3) // 3 x 80
	require.NoError(t, err)
	_, err = uc.AddToCart(context.Background(), "ada@example.com", "p2", 2) // 2 x 40
	require.NoError(t, err)

	total, err := uc.TotalCartValue(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 320.0, total)

	// Another user's cart is empty and totals zero.
	total, err = uc.TotalCartValue(context.Background(), "ben@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestRemoveFromCart(t *testing.T) {
	uc, carts, _ := newTestUseCase()
	view, err := uc.AddToCart(context.Background(), "ada@example.com", "p1", 1)
	require.NoError(t, err)

	// Not the owner.
	err = uc.RemoveFromCart(context.Background(), "ben@example.com", view.ID)
	assert.True(t, apperrors.IsAuthorization(err))
	assert.Len(t, carts.items, 1)

	// Unknown item.
	err = uc.RemoveFromCart(context.Background(), "ada@example.com", "missing")
	assert.True(t, apperrors.IsNotFound(err))

	// Owner removes it.
	require.NoError(t, uc.RemoveFromCart(context.Background(), "ada@example.com", view.ID))
	assert.Empty(t, carts.items)
}
