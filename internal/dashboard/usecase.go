package dashboard

import (
	"context"

	"github.com/shopcart/order-service/internal/dashboard/dto"
)

type UseCase interface {
	GetGlobalMetrics(ctx context.Context) (*dto.DashboardMetrics, error)
	GetMetricsForAdmin(ctx context.Context, email string) (*dto.DashboardMetrics, error)
}
