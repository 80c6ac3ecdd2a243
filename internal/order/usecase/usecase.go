package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopcart/order-service/internal/cart"
	"github.com/shopcart/order-service/internal/model"
	"github.com/shopcart/order-service/internal/order"
	"github.com/shopcart/order-service/internal/order/dto"
	"github.com/shopcart/order-service/internal/pricing"
	"github.com/shopcart/order-service/internal/user"
	"github.com/shopcart/order-service/pkg/apperrors"
	"github.com/shopcart/order-service/pkg/logger"
)

type orderUseCase struct {
	repo      order.Repository
	cartRepo  cart.Repository
	userRepo  user.Repository
	publisher order.Publisher
	logger    logger.ZapLogger
	now       func() time.Time

	// Simulated payment latency. Zero by default; configurable for demos.
	paymentDelay time.Duration
}

func NewOrderUseCase(
	repo order.Repository,
	cartRepo cart.Repository,
	userRepo user.Repository,
	publisher order.Publisher,
	log logger.ZapLogger,
	paymentDelay time.Duration,
) order.UseCase {
	return &orderUseCase{
		repo:         repo,
		cartRepo:     cartRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		logger:       log,
		now:          time.Now,
		paymentDelay: paymentDelay,
	}
}

func (uc *orderUseCase) PlaceOrder(ctx context.Context, email string, input *dto.PlaceOrderInput) (*model.Order, error) {
	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NotFound("user not found with email: %s", email)
	}

	cartItems, err := uc.cartRepo.FindByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, apperrors.Validation("cart is empty")
	}

	// Payment is simulated; a real gateway integration replaces this block.
	if uc.paymentDelay > 0 {
		select {
		case <-time.After(uc.paymentDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	now := uc.now()
	orderID := uuid.New().String()

	o := &model.Order{
		BaseModel:       model.BaseModel{ID: orderID, CreatedAt: now, UpdatedAt: now},
		UserID:          u.ID,
		Status:          model.StatusPlaced,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   "SUCCESS",
		TransactionID:   "TXN-" + uuid.New().String(),
		ShippingAddress: input.ShippingAddress,
		UserName:        u.Name,
		UserEmail:       u.Email,
	}

	// Snapshot prices at checkout. Later discount or price changes never
	// touch these rows.
	total := 0.0
	for _, ci := range cartItems {
		if ci.Product == nil {
			return nil, apperrors.NotFound("product not found with id: %s", ci.ProductID)
		}
		price := pricing.EffectivePrice(ci.Product, now)
		lineTotal := price * float64(ci.Quantity)
		total += lineTotal

		o.Items = append(o.Items, model.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			ProductID:   ci.ProductID,
			Quantity:    ci.Quantity,
			Price:       price,
			Total:       lineTotal,
			Status:      model.StatusPlaced,
			CreatedAt:   now,
			ProductName: ci.Product.Name,
		})
	}
	o.TotalAmount = total
	o.History = []model.OrderStatusHistory{{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		Status:    model.StatusPlaced,
		ChangedAt: now,
	}}

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	uc.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("user_id", u.ID),
		zap.Float64("total_amount", o.TotalAmount),
	)
	uc.publishEvent(order.EventOrderPlaced, o)

	return o, nil
}

func (uc *orderUseCase) GetOrdersByUser(ctx context.Context, email string) ([]model.Order, error) {
	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NotFound("user not found with email: %s", email)
	}
	return uc.repo.FindByUser(ctx, u.ID)
}

func (uc *orderUseCase) GetOrderByID(ctx context.Context, email, orderID string) (*model.Order, error) {
	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NotFound("user not found with email: %s", email)
	}

	o, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NotFound("order not found with id: %s", orderID)
	}
	if o.UserID != u.ID {
		return nil, apperrors.Authorization("you are not authorized to view this order")
	}
	return o, nil
}

func (uc *orderUseCase) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *orderUseCase) GetOrdersForAdmin(ctx context.Context, adminID string) ([]model.Order, error) {
	orders, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Order, 0)
	for _, o := range orders {
		var adminItems []model.OrderItem
		for _, it := range o.Items {
			if it.ProductAddedBy == adminID {
				adminItems = append(adminItems, it)
			}
		}
		if len(adminItems) == 0 {
			continue
		}

		// Synthetic projection, never persisted: only the admin's items, and
		// the total recomputed over them.
		partial := o
		partial.Items = adminItems
		partial.History = nil
		partialTotal := 0.0
		for _, it := range adminItems {
			partialTotal += it.Price * float64(it.Quantity)
		}
		partial.TotalAmount = partialTotal
		filtered = append(filtered, partial)
	}
	return filtered, nil
}

func (uc *orderUseCase) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if !status.Valid() {
		return apperrors.Validation("unknown order status: %s", status)
	}

	// No transition graph at the order level: any status may be set by an
	// authorized caller (admin override). Item-level cancellation is the only
	// transition with enforced legality.
	if err := uc.repo.UpdateStatusCascade(ctx, orderID, status, uc.now()); err != nil {
		return err
	}

	uc.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
	)
	return nil
}

func (uc *orderUseCase) UpdateOrderItemStatus(ctx context.Context, itemID string, status model.OrderStatus) error {
	if !status.Valid() {
		return apperrors.Validation("unknown order status: %s", status)
	}
	return uc.repo.UpdateItemStatus(ctx, itemID, status, uc.now())
}

func (uc *orderUseCase) CancelOrderItem(ctx context.Context, email, orderID, itemID string) error {
	o, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return apperrors.NotFound("order not found with id: %s", orderID)
	}

	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil || o.UserID != u.ID {
		return apperrors.Authorization("you are not authorized to cancel this order")
	}

	var item *model.OrderItem
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			item = &o.Items[i]
			break
		}
	}
	if item == nil {
		return apperrors.NotFound("order item not found with id: %s", itemID)
	}
	if !item.Status.Cancellable() {
		return apperrors.InvalidState("this item cannot be cancelled after it is shipped or delivered")
	}

	// The repository re-checks cancellability inside the transaction; the
	// check above only gives the common case a precise error without a tx.
	if err := uc.repo.CancelItem(ctx, orderID, itemID, uc.now()); err != nil {
		return err
	}

	uc.logger.Info("order item cancelled",
		zap.String("order_id", orderID),
		zap.String("item_id", itemID),
		zap.Int("restored_qty", item.Quantity),
	)

	cancelled := *o
	cancelled.Items = []model.OrderItem{*item}
	uc.publishEvent(order.EventOrderItemCancelled, &cancelled)

	return nil
}

func (uc *orderUseCase) InvoiceData(ctx context.Context, orderID string) (*dto.InvoiceData, error) {
	o, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NotFound("order not found with id: %s", orderID)
	}

	inv := &dto.InvoiceData{
		OrderID:       o.ID,
		OrderDate:     o.CreatedAt,
		CustomerName:  o.UserName,
		CustomerEmail: o.UserEmail,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		TransactionID: o.TransactionID,
		Status:        o.Status,
	}
	for _, it := range o.Items {
		inv.Items = append(inv.Items, dto.InvoiceLine{
			ProductName: it.ProductName,
			UnitPrice:   it.Price,
			Quantity:    it.Quantity,
			LineTotal:   it.Total,
		})
	}
	return inv, nil
}

// publishEvent fires an event after the transaction committed. Delivery is
// best-effort: a broker outage must not fail the user-visible operation.
func (uc *orderUseCase) publishEvent(eventType string, o *model.Order) {
	if uc.publisher == nil {
		return
	}

	ev := order.Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: uc.now(),
		Payload: order.EventPayload{
			OrderID:     o.ID,
			UserID:      o.UserID,
			TotalAmount: o.TotalAmount,
		},
	}
	for _, it := range o.Items {
		ev.Payload.Items = append(ev.Payload.Items, order.EventItemPayload{
			ItemID:    it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	go func() {
		data, err := json.Marshal(ev)
		if err != nil {
			uc.logger.Error("failed to marshal order event", zap.Error(err))
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.publisher.Publish(ctx, []byte(o.ID), data); err != nil {
			uc.logger.Error("failed to publish order event",
				zap.String("event_type", eventType),
				zap.String("order_id", o.ID),
				zap.Error(err),
			)
		}
	}()
}
