package dto

import "github.com/shopcart/order-service/internal/model"

type PlaceOrderInput struct {
	ShippingAddress model.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                `json:"payment_method"`
}
