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

type fakeProductRepo struct {
	products map[string]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*model.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Discounts = append([]model.Discount(nil), p.Discounts...)
	return &cp, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	stored := r.products[p.ID]
	discounts := stored.Discounts
	cp := *p
	cp.Discounts = discounts
	r.products[p.ID] = &cp
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

func newTestUseCase() (*productUseCase, *fakeProductRepo) {
	repo := newFakeProductRepo()
	uc := &productUseCase{
		repo:   repo,
		logger: logger.NewNop(),
		now:    func() time.Time { return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
	return uc, repo
}

func TestCreateProductValidation(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{AdminID: "a1", Price: 10})
	assert.True(t, apperrors.IsValidation(err))

	_, err = uc.CreateProduct(context.Background(), &dto.CreateProductInput{AdminID: "a1", Name: "X", Price: -1})
	assert.True(t, apperrors.IsValidation(err))

	_, err = uc.CreateProduct(context.Background(), &dto.CreateProductInput{AdminID: "a1", Name: "X", Price: 1, Stock: -5})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateAndGetProduct(t *testing.T) {
	uc, _ := newTestUseCase()

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		AdminID: "a1", Name: "Keyboard", Price: 100, Stock: 10, Description: "mech",
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)

	view, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", view.Name)
	assert.Equal(t, 100.0, view.Price)
	assert.Equal(t, 100.0, view.EffectivePrice)
	assert.False(t, view.DiscountActive)
	require.NotNil(t, view.Description)
	assert.Equal(t, "mech", *view.Description)

	_, err = uc.GetProduct(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateProductOwnership(t *testing.T) {
	uc, _ := newTestUseCase()
	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		AdminID: "a1", Name: "Keyboard", Price: 100, Stock: 10,
	})
	require.NoError(t, err)

	_, err = uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID: p.ID, AdminID: "a2", Name: "Keyboard v2", Price: 90, Stock: 10,
	})
	assert.True(t, apperrors.IsAuthorization(err))

	updated, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID: p.ID, AdminID: "a1", Name: "Keyboard v2", Price: 90, Stock: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Keyboard v2", updated.Name)
	assert.Equal(t, 90.0, updated.Price)
	assert.Equal(t, 8, updated.Stock)
}

func TestDeleteProductOwnership(t *testing.T) {
	uc, repo := newTestUseCase()
	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		AdminID: "a1", Name: "Keyboard", Price: 100, Stock: 10,
	})
	require.NoError(t, err)

	err = uc.DeleteProduct(context.Background(), "a2", p.ID)
	assert.True(t, apperrors.IsAuthorization(err))

	require.NoError(t, uc.DeleteProduct(context.Background(), "a1", p.ID))
	assert.Empty(t, repo.products)

	err = uc.DeleteProduct(context.Background(), "a1", p.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddDiscountRejectsOverlap(t *testing.T) {
	uc, _ := newTestUseCase()
	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		AdminID: "a1", Name: "Keyboard", Price: 100, Stock: 10,
	})
	require.NoError(t, err)

	d, err := uc.AddDiscount(context.Background(), &dto.DiscountInput{ProductID: p.ID, Percentage: 20})
	require.NoError(t, err)
	assert.True(t, d.Active)
	assert.Equal(t, 20.0, d.Percentage)

	// A second live discount on the same product is rejected.
	_, err = uc.AddDiscount(context.Background(), &dto.DiscountInput{ProductID: p.ID, Percentage: 30})
	assert.True(t, apperrors.IsValidation(err))

	view, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, view.EffectivePrice)
	assert.True(t, view.DiscountActive)
}

func TestAddDiscountPercentageBounds(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.AddDiscount(context.Background(), &dto.DiscountInput{ProductID: "p", Percentage: -1})
	assert.True(t, apperrors.IsValidation(err))
	_, err = uc.AddDiscount(context.Background(), &dto.DiscountInput{ProductID: "p", Percentage: 101})
	assert.True(t, apperrors.IsValidation(err))
}

func TestRemoveDiscountDeactivates(t *testing.T) {
	uc, _ := newTestUseCase()
	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		AdminID: "a1", Name: "Keyboard", Price: 100, Stock: 10,
	})
	require.NoError(t, err)
	_, err = uc.AddDiscount(context.Background(), &dto.DiscountInput{ProductID: p.ID, Percentage: 20})
	require.NoError(t, err)

	require.NoError(t, uc.RemoveDiscount(context.Background(), p.ID))

	view, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, view.EffectivePrice)
	assert.False(t, view.DiscountActive)

	// Removing again is a no-op.
	require.NoError(t, uc.RemoveDiscount(context.Background(), p.ID))

	// And a fresh discount can now be added.
	_, err = uc.AddDiscount(context.Background(), &dto.DiscountInput{ProductID: p.ID, Percentage: 10})
	require.NoError(t, err)
}

func TestListProductsWithoutCacheOrSearch(t *testing.T) {
	uc, _ := newTestUseCase()
	for _, name := range []string{"Keyboard", "Mouse"} {
		_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
			AdminID: "a1", Name: name, Price: 10, Stock: 1,
		})
		require.NoError(t, err)
	}

	views, count, err := uc.ListProducts(context.Background(), &dto.ProductFilters{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, views, 2)
}
