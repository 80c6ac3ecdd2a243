package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcart/order-service/internal/model"
	"github.com/shopcart/order-service/pkg/apperrors"
	"github.com/shopcart/order-service/pkg/logger"
)

type fakeUserRepo struct {
	admin *model.User
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if r.admin != nil && r.admin.Email == email {
		return r.admin, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	if r.admin != nil && r.admin.ID == id {
		return r.admin, nil
	}
	return nil, nil
}

type fakeMetricsRepo struct {
	byStatus      map[model.OrderStatus]int64
	adminByStatus map[model.OrderStatus]int64
	adminID       string
}

func (r *fakeMetricsRepo) CountUsers(_ context.Context) (int64, error)  { return 42, nil }
func (r *fakeMetricsRepo) CountOrders(_ context.Context) (int64, error) { return 17, nil }
func (r *fakeMetricsRepo) TotalRevenue(_ context.Context) (float64, error) {
	return 1234.56, nil
}

func (r *fakeMetricsRepo) CountOrdersByStatus(_ context.Context, status model.OrderStatus) (int64, error) {
	return r.byStatus[status], nil
}

func (r *fakeMetricsRepo) CountOrdersWithAdminItems(_ context.Context, adminID string) (int64, error) {
	if adminID != r.adminID {
		return 0, nil
	}
	return 5, nil
}

func (r *fakeMetricsRepo) AdminDeliveredRevenue(_ context.Context, adminID string) (float64, error) {
	if adminID != r.adminID {
		return 0, nil
	}
	return 300.0, nil
}

func (r *fakeMetricsRepo) CountAdminItemsByStatus(_ context.Context, adminID string, status model.OrderStatus) (int64, error) {
	if adminID != r.adminID {
		return 0, nil
	}
	return r.adminByStatus[status], nil
}

func newTestUseCase() (*dashboardUseCase, *fakeMetricsRepo) {
	repo := &fakeMetricsRepo{
		byStatus: map[model.OrderStatus]int64{
			model.StatusPlaced:    8,
			model.StatusShipped:   4,
			model.StatusDelivered: 3,
			model.StatusCancelled: 2,
		},
		adminByStatus: map[model.OrderStatus]int64{
			model.StatusPlaced:    2,
			model.StatusDelivered: 3,
		},
		adminID: "a1",
	}
	users := &fakeUserRepo{admin: &model.User{
		BaseModel: model.BaseModel{ID: "a1"},
		Name:      "Root",
		Email:     "admin@example.com",
		Role:      model.RoleAdmin,
	}}
	return &dashboardUseCase{repo: repo, userRepo: users, logger: logger.NewNop()}, repo
}

func TestGetGlobalMetrics(t *testing.T) {
	uc, _ := newTestUseCase()

	m, err := uc.GetGlobalMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), m.TotalUsers)
	assert.Equal(t, int64(17), m.TotalOrders)
	assert.Equal(t, 1234.56, m.TotalRevenue)
	assert.Equal(t, int64(8), m.PlacedOrders)
	assert.Equal(t, int64(4), m.ShippedOrders)
	assert.Equal(t, int64(3), m.DeliveredOrders)
	assert.Equal(t, int64(2), m.CancelledOrders)
}

func TestGetMetricsForAdmin(t *testing.T) {
	uc, _ := newTestUseCase()

	m, err := uc.GetMetricsForAdmin(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(5), m.TotalOrders)
	// Admin revenue counts delivered items only.
	assert.Equal(t, 300.0, m.TotalRevenue)
	assert.Equal(t, int64(2), m.PlacedOrders)
	assert.Equal(t, int64(0), m.ShippedOrders)
	assert.Equal(t, int64(3), m.DeliveredOrders)
	assert.Equal(t, int64(0), m.TotalUsers)
}

func TestGetMetricsForAdminUnknownEmail(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.GetMetricsForAdmin(context.Background(), "nobody@example.com")
	assert.True(t, apperrors.IsNotFound(err))
}
