package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopcart/order-service/internal/auth"
	"github.com/shopcart/order-service/internal/httputil"
	"github.com/shopcart/order-service/internal/model"
	"github.com/shopcart/order-service/internal/order"
	"github.com/shopcart/order-service/internal/order/dto"
	"github.com/shopcart/order-service/pkg/apperrors"
	"github.com/shopcart/order-service/pkg/logger"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

func (h *OrderHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireUser)

	r.Post("/", h.placeOrder)
	r.Get("/", h.listOrders)
	r.Get("/{orderID}", h.getOrder)
	r.Get("/{orderID}/invoice", h.invoiceData)
	r.Delete("/{orderID}/items/{itemID}", h.cancelItem)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/all", h.listAllOrders)
		r.Get("/admin", h.listAdminOrders)
		r.Put("/{orderID}/status", h.updateStatus)
		r.Put("/items/{itemID}/status", h.updateItemStatus)
	})
	return r
}

func (h *OrderHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var input dto.PlaceOrderInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}

	o, err := h.uc.PlaceOrder(r.Context(), auth.GetEmail(r.Context()), &input)
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.uc.GetOrdersByUser(r.Context(), auth.GetEmail(r.Context()))
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.uc.GetOrderByID(r.Context(), auth.GetEmail(r.Context()), chi.URLParam(r, "orderID"))
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, o)
}

func (h *OrderHandler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.uc.GetAllOrders(r.Context())
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) listAdminOrders(w http.ResponseWriter, r *http.Request) {
	uc, _ := auth.FromContext(r.Context())
	orders, err := h.uc.GetOrdersForAdmin(r.Context(), uc.UserID)
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, orders)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	status, ok := model.ParseOrderStatus(req.Status)
	if !ok {
		httputil.Error(w, h.logger, apperrors.Validation("unknown order status: %s", req.Status))
		return
	}

	if err := h.uc.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderID"), status); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

func (h *OrderHandler) updateItemStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	status, ok := model.ParseOrderStatus(req.Status)
	if !ok {
		httputil.Error(w, h.logger, apperrors.Validation("unknown order status: %s", req.Status))
		return
	}

	if err := h.uc.UpdateOrderItemStatus(r.Context(), chi.URLParam(r, "itemID"), status); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

func (h *OrderHandler) cancelItem(w http.ResponseWriter, r *http.Request) {
	err := h.uc.CancelOrderItem(r.Context(),
		auth.GetEmail(r.Context()),
		chi.URLParam(r, "orderID"),
		chi.URLParam(r, "itemID"),
	)
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"status": string(model.StatusCancelled)})
}

func (h *OrderHandler) invoiceData(w http.ResponseWriter, r *http.Request) {
	// Ownership check piggybacks on GetOrderByID before exposing the data.
	if _, err := h.uc.GetOrderByID(r.Context(), auth.GetEmail(r.Context()), chi.URLParam(r, "orderID")); err != nil {
		if !apperrors.IsAuthorization(err) || !auth.IsAdmin(r.Context()) {
			httputil.Error(w, h.logger, err)
			return
		}
	}

	inv, err := h.uc.InvoiceData(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, inv)
}
