package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopcart/order-service/internal/cart"
	"github.com/shopcart/order-service/internal/cart/dto"
	"github.com/shopcart/order-service/internal/model"
	"github.com/shopcart/order-service/internal/pricing"
	"github.com/shopcart/order-service/internal/product"
	"github.com/shopcart/order-service/internal/user"
	"github.com/shopcart/order-service/pkg/apperrors"
	"github.com/shopcart/order-service/pkg/logger"
)

type cartUseCase struct {
	repo        cart.Repository
	userRepo    user.Repository
	productRepo product.Repository
	logger      logger.ZapLogger
	now         func() time.Time
}

func NewCartUseCase(repo cart.Repository, userRepo user.Repository, productRepo product.Repository, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		repo:        repo,
		userRepo:    userRepo,
		productRepo: productRepo,
		logger:      log,
		now:         time.Now,
	}
}

func (uc *cartUseCase) AddToCart(ctx context.Context, email, productID string, quantity int) (*dto.CartItemView, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NotFound("user not found with email: %s", email)
	}

	p, err := uc.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found with id: %s", productID)
	}

	// Advisory only; the authoritative check is the conditional reservation
	// inside the checkout transaction.
	if p.Stock < quantity {
		return nil, apperrors.InsufficientStock("not enough stock for product: %s", p.Name)
	}

	now := uc.now()
	item := &model.CartItem{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		UserID:    u.ID,
		ProductID: p.ID,
		Quantity:  quantity,
		Product:   p,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	uc.logger.Debug("cart item added",
		zap.String("user_id", u.ID),
		zap.String("product_id", p.ID),
		zap.Int("quantity", quantity),
	)

	view := uc.value(item, now)
	return &view, nil
}

func (uc *cartUseCase) GetCartItems(ctx context.Context, email string) ([]dto.CartItemView, error) {
	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NotFound("user not found with email: %s", email)
	}

	items, err := uc.repo.FindByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	views := make([]dto.CartItemView, 0, len(items))
	for i := range items {
		views = append(views, uc.value(&items[i], now))
	}
	return views, nil
}

func (uc *cartUseCase) RemoveFromCart(ctx context.Context, email, cartItemID string) error {
	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return apperrors.NotFound("user not found with email: %s", email)
	}

	item, err := uc.repo.FindByID(ctx, cartItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperrors.NotFound("cart item not found with id: %s", cartItemID)
	}
	if item.UserID != u.ID {
		return apperrors.Authorization("cart item does not belong to the logged-in user")
	}

	return uc.repo.Delete(ctx, cartItemID)
}

func (uc *cartUseCase) TotalCartValue(ctx context.Context, email string) (float64, error) {
	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, apperrors.NotFound("user not found with email: %s", email)
	}

	items, err := uc.repo.FindByUser(ctx, u.ID)
	if err != nil {
		return 0, err
	}

	now := uc.now()
	total := 0.0
	for i := range items {
		total += pricing.EffectivePrice(items[i].Product, now) * float64(items[i].Quantity)
	}
	return total, nil
}

func (uc *cartUseCase) value(item *model.CartItem, now time.Time) dto.CartItemView {
	view := dto.CartItemView{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if item.Product != nil {
		view.ProductName = item.Product.Name
		view.OriginalPrice = item.Product.Price
		view.UnitPrice = pricing.EffectivePrice(item.Product, now)
		view.LineTotal = view.UnitPrice * float64(item.Quantity)
	}
	return view
}
