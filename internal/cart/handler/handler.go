package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopcart/order-service/internal/auth"
	"github.com/shopcart/order-service/internal/cart"
	"github.com/shopcart/order-service/internal/httputil"
	"github.com/shopcart/order-service/pkg/logger"
)

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{uc: uc, logger: log}
}

func (h *CartHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireUser)
	r.Post("/", h.addToCart)
	r.Get("/", h.listCart)
	r.Get("/total", h.totalValue)
	r.Delete("/{itemID}", h.removeFromCart)
	return r
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}

	view, err := h.uc.AddToCart(r.Context(), auth.GetEmail(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, view)
}

func (h *CartHandler) listCart(w http.ResponseWriter, r *http.Request) {
	views, err := h.uc.GetCartItems(r.Context(), auth.GetEmail(r.Context()))
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, views)
}

func (h *CartHandler) totalValue(w http.ResponseWriter, r *http.Request) {
	total, err := h.uc.TotalCartValue(r.Context(), auth.GetEmail(r.Context()))
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]float64{"total": total})
}

func (h *CartHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if err := h.uc.RemoveFromCart(r.Context(), auth.GetEmail(r.Context()), itemID); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusNoContent, nil)
}
