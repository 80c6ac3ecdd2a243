package model

import "time"

type OrderStatus string

const (
	StatusPlaced    OrderStatus = "PLACED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPlaced, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether an item in this status may still be cancelled.
// Shipped and delivered items are terminal for cancellation; an already
// cancelled item cannot be cancelled again.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPlaced
}

func ParseOrderStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(raw)
	return s, s.Valid()
}

// ShippingAddress is denormalized onto the order row; it is a snapshot, not a
// reference, so later address-book edits never rewrite history.
type ShippingAddress struct {
	Street  string `db:"ship_street" json:"street"`
	City    string `db:"ship_city" json:"city"`
	State   string `db:"ship_state" json:"state"`
	ZipCode string `db:"ship_zip_code" json:"zip_code"`
	Country string `db:"ship_country" json:"country"`
}

type Order struct {
	BaseModel
	UserID        string      `db:"user_id" json:"user_id"`
	Status        OrderStatus `db:"status" json:"status"`
	TotalAmount   float64     `db:"total_amount" json:"total_amount"`
	PaymentMethod string      `db:"payment_method" json:"payment_method"`
	PaymentStatus string      `db:"payment_status" json:"payment_status"`
	TransactionID string      `db:"transaction_id" json:"transaction_id"`
	ShippingAddress
	Items     []OrderItem          `db:"-" json:"items"`
	History   []OrderStatusHistory `db:"-" json:"status_history"`
	UserName  string               `db:"user_name" json:"user_name"`   // joined
	UserEmail string               `db:"user_email" json:"user_email"` // joined
}

// OrderItem snapshots quantity and unit price at checkout; only Status is
// mutated afterwards.
type OrderItem struct {
	ID             string      `db:"id" json:"id"`
	OrderID        string      `db:"order_id" json:"order_id"`
	ProductID      string      `db:"product_id" json:"product_id"`
	Quantity       int         `db:"quantity" json:"quantity"`
	Price          float64     `db:"price" json:"price"`
	Total          float64     `db:"total" json:"total"`
	Status         OrderStatus `db:"status" json:"status"`
	CreatedAt      time.Time   `db:"created_at" json:"-"`
	ProductName    string      `db:"product_name" json:"product_name"`         // joined
	ProductAddedBy string      `db:"product_added_by" json:"product_added_by"` // joined
}

type OrderStatusHistory struct {
	ID        string      `db:"id" json:"id"`
	OrderID   string      `db:"order_id" json:"order_id"`
	Status    OrderStatus `db:"status" json:"status"`
	ChangedAt time.Time   `db:"changed_at" json:"changed_at"`
}
