package order

import (
	"context"
	"time"
)

// Publisher is the downstream event sink (kafka in production).
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderItemCancelled = "OrderItemCancelled"
)

type Event struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   EventPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type EventPayload struct {
	OrderID     string             `json:"order_id"`
	UserID      string             `json:"user_id"`
	TotalAmount float64            `json:"total_amount"`
	Items       []EventItemPayload `json:"items"`
}

type EventItemPayload struct {
	ItemID    string  `json:"item_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
