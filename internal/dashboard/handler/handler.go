package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopcart/order-service/internal/auth"
	"github.com/shopcart/order-service/internal/dashboard"
	"github.com/shopcart/order-service/internal/httputil"
	"github.com/shopcart/order-service/pkg/logger"
)

type DashboardHandler struct {
	uc     dashboard.UseCase
	logger logger.ZapLogger
}

func NewDashboardHandler(uc dashboard.UseCase, log logger.ZapLogger) *DashboardHandler {
	return &DashboardHandler{uc: uc, logger: log}
}

func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireUser, auth.RequireAdmin)
	r.Get("/metrics", h.globalMetrics)
	r.Get("/metrics/me", h.adminMetrics)
	return r
}

func (h *DashboardHandler) globalMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.uc.GetGlobalMetrics(r.Context())
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, m)
}

func (h *DashboardHandler) adminMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.uc.GetMetricsForAdmin(r.Context(), auth.GetEmail(r.Context()))
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, m)
}
