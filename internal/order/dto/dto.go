package dto

import (
	"time"

	"github.com/shopcart/order-service/internal/model"
)

// InvoiceData carries everything an invoice renderer needs. Rendering to a
// document format happens outside this service.
type InvoiceData struct {
	OrderID       string            `json:"order_id"`
	OrderDate     time.Time         `json:"order_date"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	Items         []InvoiceLine     `json:"items"`
	TotalAmount   float64           `json:"total_amount"`
	PaymentMethod string            `json:"payment_method"`
	TransactionID string            `json:"transaction_id"`
	Status        model.OrderStatus `json:"status"`
}

type InvoiceLine struct {
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}
