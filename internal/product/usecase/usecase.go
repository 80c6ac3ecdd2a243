package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopcart/order-service/internal/model"
	"github.com/shopcart/order-service/internal/pricing"
	"github.com/shopcart/order-service/internal/product"
	"github.com/shopcart/order-service/internal/product/dto"
	"github.com/shopcart/order-service/pkg/apperrors"
	"github.com/shopcart/order-service/pkg/cache"
	"github.com/shopcart/order-service/pkg/logger"
	"github.com/shopcart/order-service/pkg/search"
)

const productIndex = "products"

const productMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"description": { "type": "text" },
			"price": { "type": "double" },
			"added_by": { "type": "keyword" },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
	now    func() time.Time
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
		now:    time.Now,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if input.Name == "" {
		return nil, apperrors.Validation("product name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.Validation("product price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, apperrors.Validation("product stock cannot be negative")
	}

	now := uc.now()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
		Price:     input.Price,
		Stock:     input.Stock,
		AddedBy:   input.AdminID,
	}
	if input.Description != "" {
		p.Description = &input.Description
	}
	if input.ImageURL != "" {
		p.ImageURL = &input.ImageURL
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductView, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found with id: %s", id)
	}
	view := uc.view(p, uc.now())
	return &view, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]dto.ProductView, int, error) {
	now := uc.now()

	cacheKey := uc.listCacheKey(filters)
	if uc.cache != nil && cacheKey != "" {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var cached struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return uc.views(cached.Products, now), cached.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return uc.views(products, now), count, nil
		}
		uc.logger.Error("elasticsearch search failed, falling back to db", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil && cacheKey != "" {
		payload := struct {
			Products []model.Product
			Count    int
		}{products, count}
		if data, err := json.Marshal(payload); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return uc.views(products, now), count, nil
}

func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"query_string": map[string]interface{}{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name^3", "description"},
			},
		},
		"from": (filters.Page - 1) * filters.PageSize,
	}
	if filters.PageSize > 0 {
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, productIndex, q)
	if err != nil {
		return nil, 0, err
	}

	// ES documents do not carry discounts; reload the matches so discount
	// windows resolve against current data.
	var products []model.Product
	for _, hit := range res.Hits.Hits {
		p, err := uc.repo.FindByID(ctx, hit.ID)
		if err != nil {
			return nil, 0, err
		}
		if p != nil {
			products = append(products, *p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found with id: %s", input.ID)
	}
	if p.AddedBy != input.AdminID {
		return nil, apperrors.Authorization("you are not authorized to update this product")
	}
	if input.Price < 0 {
		return nil, apperrors.Validation("product price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, apperrors.Validation("product stock cannot be negative")
	}

	p.Name = input.Name
	p.Price = input.Price
	p.Stock = input.Stock
	if input.Description != "" {
		p.Description = &input.Description
	} else {
		p.Description = nil
	}
	if input.ImageURL != "" {
		p.ImageURL = &input.ImageURL
	}
	p.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, adminID, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperrors.NotFound("product not found with id: %s", id)
	}
	if p.AddedBy != adminID {
		return apperrors.Authorization("you are not authorized to delete this product")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
				uc.logger.Error("failed to delete product from es", zap.Error(err))
			}
		}()
	}
	return nil
}

func (uc *productUseCase) AddDiscount(ctx context.Context, input *dto.DiscountInput) (*model.Discount, error) {
	if input.Percentage < 0 || input.Percentage > 100 {
		return nil, apperrors.Validation("discount percentage must be between 0 and 100")
	}

	p, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found with id: %s", input.ProductID)
	}

	now := uc.now()
	if _, exists := pricing.EffectiveDiscount(p, now); exists {
		return nil, apperrors.Validation("discount already exists for this product")
	}

	start := input.StartDate
	if start == nil {
		start = &now
	}
	d := &model.Discount{
		ID:         uuid.New().String(),
		ProductID:  p.ID,
		Percentage: input.Percentage,
		StartDate:  start,
		EndDate:    input.EndDate,
		Active:     true,
		CreatedAt:  now,
	}
	if err := uc.repo.CreateDiscount(ctx, d); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	return d, nil
}

func (uc *productUseCase) UpdateDiscount(ctx context.Context, input *dto.DiscountInput) (*model.Discount, error) {
	if input.Percentage < 0 || input.Percentage > 100 {
		return nil, apperrors.Validation("discount percentage must be between 0 and 100")
	}

	p, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found with id: %s", input.ProductID)
	}

	d, exists := pricing.EffectiveDiscount(p, uc.now())
	if !exists {
		return nil, apperrors.NotFound("no active discount found for this product")
	}

	d.Percentage = input.Percentage
	if input.StartDate != nil {
		d.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		d.EndDate = input.EndDate
	}
	if err := uc.repo.UpdateDiscount(ctx, &d); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	return &d, nil
}

func (uc *productUseCase) RemoveDiscount(ctx context.Context, productID string) error {
	p, err := uc.repo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return apperrors.NotFound("product not found with id: %s", productID)
	}

	now := uc.now()
	d, exists := pricing.EffectiveDiscount(p, now)
	if !exists {
		return nil // nothing to remove
	}

	d.Active = false
	d.EndDate = &now
	if err := uc.repo.UpdateDiscount(ctx, &d); err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background())
	return nil
}

func (uc *productUseCase) view(p *model.Product, now time.Time) dto.ProductView {
	effective := pricing.EffectivePrice(p, now)
	return dto.ProductView{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		EffectivePrice: effective,
		DiscountActive: effective != p.Price,
		Stock:          p.Stock,
		ImageURL:       p.ImageURL,
		AddedBy:        p.AddedBy,
	}
}

func (uc *productUseCase) views(products []model.Product, now time.Time) []dto.ProductView {
	views := make([]dto.ProductView, 0, len(products))
	for i := range products {
		views = append(views, uc.view(&products[i], now))
	}
	return views
}

func (uc *productUseCase) listCacheKey(filters *dto.ProductFilters) string {
	data, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data))
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidatePattern(ctx, "products:list:*"); err != nil {
		uc.logger.Error("failed to invalidate product list cache", zap.Error(err))
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	_ = uc.es.CreateIndex(ctx, productIndex, productMapping)
	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}
