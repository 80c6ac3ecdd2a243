package usecase

import (
	"context"

	"github.com/shopcart/order-service/internal/dashboard"
	"github.com/shopcart/order-service/internal/dashboard/dto"
	"github.com/shopcart/order-service/internal/model"
	"github.com/shopcart/order-service/internal/user"
	"github.com/shopcart/order-service/pkg/apperrors"
	"github.com/shopcart/order-service/pkg/logger"
)

type dashboardUseCase struct {
	repo     dashboard.Repository
	userRepo user.Repository
	logger   logger.ZapLogger
}

func NewDashboardUseCase(repo dashboard.Repository, userRepo user.Repository, log logger.ZapLogger) dashboard.UseCase {
	return &dashboardUseCase{repo: repo, userRepo: userRepo, logger: log}
}

func (uc *dashboardUseCase) GetGlobalMetrics(ctx context.Context) (*dto.DashboardMetrics, error) {
	m := &dto.DashboardMetrics{}
	var err error

	if m.TotalUsers, err = uc.repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if m.TotalOrders, err = uc.repo.CountOrders(ctx); err != nil {
		return nil, err
	}
	if m.TotalRevenue, err = uc.repo.TotalRevenue(ctx); err != nil {
		return nil, err
	}
	if m.PlacedOrders, err = uc.repo.CountOrdersByStatus(ctx, model.StatusPlaced); err != nil {
		return nil, err
	}
	if m.ShippedOrders, err = uc.repo.CountOrdersByStatus(ctx, model.StatusShipped); err != nil {
		return nil, err
	}
	if m.DeliveredOrders, err = uc.repo.CountOrdersByStatus(ctx, model.StatusDelivered); err != nil {
		return nil, err
	}
	if m.CancelledOrders, err = uc.repo.CountOrdersByStatus(ctx, model.StatusCancelled); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *dashboardUseCase) GetMetricsForAdmin(ctx context.Context, email string) (*dto.DashboardMetrics, error) {
	admin, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, apperrors.NotFound("admin not found with email: %s", email)
	}

	m := &dto.DashboardMetrics{}
	if m.TotalOrders, err = uc.repo.CountOrdersWithAdminItems(ctx, admin.ID); err != nil {
		return nil, err
	}
	// Admin revenue only counts delivered item totals.
	if m.TotalRevenue, err = uc.repo.AdminDeliveredRevenue(ctx, admin.ID); err != nil {
		return nil, err
	}
	if m.PlacedOrders, err = uc.repo.CountAdminItemsByStatus(ctx, admin.ID, model.StatusPlaced); err != nil {
		return nil, err
	}
	if m.ShippedOrders, err = uc.repo.CountAdminItemsByStatus(ctx, admin.ID, model.StatusShipped); err != nil {
		return nil, err
	}
	if m.DeliveredOrders, err = uc.repo.CountAdminItemsByStatus(ctx, admin.ID, model.StatusDelivered); err != nil {
		return nil, err
	}
	if m.CancelledOrders, err = uc.repo.CountAdminItemsByStatus(ctx, admin.ID, model.StatusCancelled); err != nil {
		return nil, err
	}
	return m, nil
}
