package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shopcart/order-service/internal/auth"
	"github.com/shopcart/order-service/internal/httputil"
	"github.com/shopcart/order-service/internal/product"
	"github.com/shopcart/order-service/internal/product/dto"
	"github.com/shopcart/order-service/pkg/logger"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: log}
}

func (h *ProductHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listProducts)
	r.Get("/{productID}", h.getProduct)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser, auth.RequireAdmin)
		r.Post("/", h.createProduct)
		r.Put("/{productID}", h.updateProduct)
		r.Delete("/{productID}", h.deleteProduct)
		r.Post("/{productID}/discount", h.addDiscount)
		r.Put("/{productID}/discount", h.updateDiscount)
		r.Delete("/{productID}/discount", h.removeDiscount)
	})
	return r
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	if page < 1 {
		page = 1
	}

	filters := &dto.ProductFilters{
		SearchQuery: q.Get("q"),
		SortBy:      q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
		Page:        page,
		PageSize:    pageSize,
	}

	views, count, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"products": views,
		"total":    count,
		"page":     page,
	})
}

func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	view, err := h.uc.GetProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, view)
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}

	uc, _ := auth.FromContext(r.Context())
	p, err := h.uc.CreateProduct(r.Context(), &dto.CreateProductInput{
		AdminID:     uc.UserID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}

	uc, _ := auth.FromContext(r.Context())
	p, err := h.uc.UpdateProduct(r.Context(), &dto.UpdateProductInput{
		ID:          chi.URLParam(r, "productID"),
		AdminID:     uc.UserID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	uc, _ := auth.FromContext(r.Context())
	if err := h.uc.DeleteProduct(r.Context(), uc.UserID, chi.URLParam(r, "productID")); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusNoContent, nil)
}

type discountRequest struct {
	Percentage float64    `json:"percentage"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
}

func (h *ProductHandler) addDiscount(w http.ResponseWriter, r *http.Request) {
	var req discountRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}

	d, err := h.uc.AddDiscount(r.Context(), &dto.DiscountInput{
		ProductID:  chi.URLParam(r, "productID"),
		Percentage: req.Percentage,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, d)
}

func (h *ProductHandler) updateDiscount(w http.ResponseWriter, r *http.Request) {
	var req discountRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}

	d, err := h.uc.UpdateDiscount(r.Context(), &dto.DiscountInput{
		ProductID:  chi.URLParam(r, "productID"),
		Percentage: req.Percentage,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusOK, d)
}

func (h *ProductHandler) removeDiscount(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.RemoveDiscount(r.Context(), chi.URLParam(r, "productID")); err != nil {
		httputil.Error(w, h.logger, err)
		return
	}
	httputil.JSON(w, http.StatusNoContent, nil)
}
